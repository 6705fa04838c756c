// Copyright 2026 The x816 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/x816/x816/asm"
	"github.com/x816/x816/console"
)

var (
	verbose     bool
	interactive bool
)

func init() {
	flag.BoolVar(&verbose, "v", false, "verbose assembly output")
	flag.BoolVar(&interactive, "i", false, "start the interactive console")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: x816 [options] <input> [<output>]\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if interactive {
		c := console.New(verbose)
		c.Run(os.Stdin, os.Stdout, console.Interactive(os.Stdin))
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}

	options := asm.Option(0)
	if verbose {
		options |= asm.Verbose
	}

	input := args[0]
	info, err := os.Stat(input)
	if err != nil {
		exitOnError(err)
	}

	// A directory input assembles every .asm file beneath it to a sibling
	// .bin file, continuing past per-file failures. An explicit output
	// argument applies only to single-file input.
	if info.IsDir() {
		failed := 0
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".asm") {
				return nil
			}
			if err := asm.AssembleFile(path, "", options, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				failed++
			}
			return nil
		})
		if err != nil {
			exitOnError(err)
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	output := ""
	if len(args) > 1 {
		output = args[1]
	}
	if err := asm.AssembleFile(input, output, options, os.Stdout); err != nil {
		exitOnError(err)
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
