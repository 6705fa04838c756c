// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package console provides an interactive shell around the assembler. It
// can assemble files on request, display the symbols they resolve to, and
// dump the bytes they produce, without leaving the prompt between runs.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/term"

	"github.com/x816/x816/asm"
	"github.com/x816/x816/mos"
)

var errQuit = errors.New("quit")

type command struct {
	name        string
	brief       string
	description string
	usage       string
	handler     func(c *Console, sel cmd.Selection) error
}

// All console commands. The table drives both the command tree and the
// help display.
var commands = []command{
	{
		name:  "assemble",
		brief: "Assemble a file and save the binary",
		description: "Run the assembler on the specified file, producing a" +
			" binary file if successful. The output path defaults to the" +
			" input path with a .bin extension.",
		usage:   "assemble <filename> [<output>]",
		handler: (*Console).cmdAssemble,
	},
	{
		name:        "symbols",
		brief:       "Show the symbol table of a file",
		description: "Assemble the specified file and display every label and named constant it resolves.",
		usage:       "symbols <filename>",
		handler:     (*Console).cmdSymbols,
	},
	{
		name:        "dump",
		brief:       "Show the bytes a file assembles to",
		description: "Assemble the specified file and display a hex dump of the binary image without saving it.",
		usage:       "dump <filename>",
		handler:     (*Console).cmdDump,
	},
	{
		name:        "modes",
		brief:       "Show the addressing modes of a mnemonic",
		description: "Display every valid encoding of an instruction mnemonic. The mnemonic may be abbreviated to an unambiguous prefix.",
		usage:       "modes <mnemonic>",
		handler:     (*Console).cmdModes,
	},
	{
		name:        "help",
		brief:       "Display help for a command",
		description: "Display the list of commands, or detailed help for a single command.",
		usage:       "help [<command>]",
		handler:     (*Console).cmdHelp,
	},
	{
		name:        "quit",
		brief:       "Leave the console",
		description: "Leave the console.",
		usage:       "quit",
		handler:     (*Console).cmdQuit,
	},
}

var cmds *cmd.Tree

func init() {
	cmds = cmd.NewTree(cmd.TreeDescriptor{Name: "x816"})
	for i := range commands {
		cmds.AddCommand(cmd.CommandDescriptor{
			Name:        commands[i].name,
			Brief:       commands[i].brief,
			Description: commands[i].description,
			Usage:       commands[i].usage,
			Data:        commands[i].handler,
		})
	}
}

// A Console reads commands from an input stream and writes the results to
// an output stream.
type Console struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	verbose     bool
}

// New creates a console. With verbose set, assembly runs display their
// stage traces.
func New(verbose bool) *Console {
	return &Console{verbose: verbose}
}

// Interactive reports whether the file descriptor is attached to a
// terminal, which is how the console decides to display prompts when
// reading from standard input.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run accepts console commands from a reader and outputs the results to a
// writer. If interactive, a prompt is displayed while the console waits
// for the next command.
func (c *Console) Run(r io.Reader, w io.Writer, interactive bool) {
	c.input = bufio.NewScanner(r)
	c.output = bufio.NewWriter(w)
	c.interactive = interactive

	for {
		c.prompt()

		line, err := c.getLine()
		if err != nil {
			break
		}
		if line == "" {
			continue
		}

		sel, err := cmds.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			c.println("Command not found.")
			continue
		case err == cmd.ErrAmbiguous:
			c.println("Command is ambiguous.")
			continue
		case err != nil:
			c.printf("ERROR: %v.\n", err)
			continue
		}

		handler := sel.Command.Data.(func(*Console, cmd.Selection) error)
		err = handler(c, sel)
		if err != nil {
			break
		}
	}

	c.flush()
}

func (c *Console) cmdAssemble(sel cmd.Selection) error {
	if len(sel.Args) < 1 {
		c.displayUsage("assemble")
		return nil
	}

	outPath := ""
	if len(sel.Args) > 1 {
		outPath = sel.Args[1]
	}

	c.flush()
	err := asm.AssembleFile(sel.Args[0], outPath, c.options(), c.output)
	if err != nil {
		c.printf("%v\n", err)
	}
	c.flush()
	return nil
}

func (c *Console) cmdSymbols(sel cmd.Selection) error {
	if len(sel.Args) < 1 {
		c.displayUsage("symbols")
		return nil
	}

	assembly, err := c.assemble(sel.Args[0])
	if err != nil {
		c.printf("%v\n", err)
		return nil
	}

	if len(assembly.Symbols) == 0 {
		c.println("No symbols.")
		return nil
	}
	for _, s := range assembly.Symbols {
		c.printf("%-15s $%0*X\n", s.Name, 2*s.Size, s.Value)
	}
	return nil
}

func (c *Console) cmdDump(sel cmd.Selection) error {
	if len(sel.Args) < 1 {
		c.displayUsage("dump")
		return nil
	}

	assembly, err := c.assemble(sel.Args[0])
	if err != nil {
		c.printf("%v\n", err)
		return nil
	}

	b := assembly.Code
	for i := 0; i < len(b); i += 16 {
		j := i + 16
		if j > len(b) {
			j = len(b)
		}
		var sb strings.Builder
		for _, v := range b[i:j] {
			fmt.Fprintf(&sb, "%02X ", v)
		}
		c.printf("%04X-  %s\n", i, strings.TrimRight(sb.String(), " "))
	}
	c.printf("%d bytes\n", len(b))
	return nil
}

func (c *Console) cmdModes(sel cmd.Selection) error {
	if len(sel.Args) < 1 {
		c.displayUsage("modes")
		return nil
	}

	set := mos.GetInstructionSet()
	mn, err := set.Find(sel.Args[0])
	if err != nil {
		c.printf("Unknown mnemonic '%s'.\n", sel.Args[0])
		return nil
	}

	for _, inst := range set.Variants(mn) {
		c.printf("%s  %-3s  opcode $%02X  %d byte(s)\n",
			inst.Mnemonic, inst.Mode, inst.Opcode, inst.Length)
	}
	return nil
}

func (c *Console) cmdHelp(sel cmd.Selection) error {
	if len(sel.Args) > 0 {
		for i := range commands {
			if commands[i].name == sel.Args[0] {
				c.printf("Syntax: %s\n\n%s\n", commands[i].usage, commands[i].description)
				return nil
			}
		}
		c.printf("Unknown command '%s'.\n", sel.Args[0])
		return nil
	}

	c.println("Commands:")
	for i := range commands {
		c.printf("    %-10s  %s\n", commands[i].name, commands[i].brief)
	}
	return nil
}

func (c *Console) cmdQuit(sel cmd.Selection) error {
	return errQuit
}

// assemble runs the full pipeline on a file without writing any output
// file.
func (c *Console) assemble(path string) (*asm.Assembly, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c.flush()
	return asm.Assemble(file, path, c.output, c.options())
}

func (c *Console) options() asm.Option {
	if c.verbose {
		return asm.Verbose
	}
	return 0
}

func (c *Console) displayUsage(name string) {
	for i := range commands {
		if commands[i].name == name {
			c.printf("Syntax: %s\n", commands[i].usage)
			return
		}
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.output, format, args...)
	c.flush()
}

func (c *Console) println(args ...any) {
	fmt.Fprintln(c.output, args...)
	c.flush()
}

func (c *Console) flush() {
	c.output.Flush()
}

func (c *Console) getLine() (string, error) {
	if c.input.Scan() {
		return strings.TrimSpace(c.input.Text()), nil
	}
	if c.input.Err() != nil {
		return "", c.input.Err()
	}
	return "", io.EOF
}

func (c *Console) prompt() {
	if c.interactive {
		c.printf("* ")
	}
}
