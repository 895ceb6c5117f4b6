// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/unitext/lib/format"
)

// runFormat renders a template with the remaining arguments.
func runFormat(args []string, std streams) error {
	flags := pflag.NewFlagSet("format", pflag.ContinueOnError)
	var newline bool
	flags.BoolVarP(&newline, "newline", "n", true, "append a newline to the output")
	flags.SetInterspersed(false)

	if help, err := parseFlags(flags, args, std.stderr); help || err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return fmt.Errorf("usage: bureau-textconv format TEMPLATE [ARGS...]")
	}

	output, err := format.SprintfArgs(flags.Arg(0), templateArgs(flags.Args()[1:]))
	if err != nil {
		return err
	}
	fmt.Fprint(std.stdout, output)
	if newline {
		fmt.Fprintln(std.stdout)
	}
	return nil
}

// templateArgs converts command-line arguments to format operands:
// integers become int, everything else stays a string.
func templateArgs(args []string) []any {
	operands := make([]any, len(args))
	for index, arg := range args {
		if value, err := strconv.Atoi(arg); err == nil {
			operands[index] = value
		} else {
			operands[index] = arg
		}
	}
	return operands
}
