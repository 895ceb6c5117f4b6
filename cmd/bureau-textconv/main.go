// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/unitext/lib/config"
	"github.com/bureau-foundation/unitext/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// streams are the process's standard streams, replaced in tests.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	std := streams{stdin: stdin, stdout: stdout, stderr: stderr}

	if len(args) < 1 {
		printUsage(stderr)
		return fmt.Errorf("subcommand required")
	}

	subcommand := args[0]
	switch subcommand {
	case "convert":
		return runConvert(args[1:], std)
	case "count":
		return runCount(args[1:], std)
	case "inspect":
		return runInspect(args[1:], std)
	case "secret":
		return runSecret(args[1:], std)
	case "format":
		return runFormat(args[1:], std)
	case "version", "--version":
		version.Print(stdout, "bureau-textconv")
		return nil
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage: bureau-textconv <subcommand> [flags]

Subcommands:
  convert     Transcode text between utf8, utf16le/be, and utf32le/be
  count       Print code unit and code point counts
  inspect     Print counts as a text, JSON, or CBOR report
  secret      Fingerprint or seal a secret held in locked memory
  format      Render a format template
  version     Print version information

Run 'bureau-textconv <subcommand> --help' for subcommand flags.
`)
}

// commonFlags are registered on every subcommand that reads the config
// file.
type commonFlags struct {
	configPath string
	logLevel   string
}

func (c *commonFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&c.configPath, "config", "", "path to YAML config (default: $BUREAU_TEXTCONV_CONFIG)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// load reads and validates the configuration, applying the --log-level
// override.
func (c *commonFlags) load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// parseFlags parses args and reports whether the command should stop
// because help was requested.
func parseFlags(flags *pflag.FlagSet, args []string, w io.Writer) (bool, error) {
	flags.SetOutput(w)
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
