// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/unitext/lib/codec"
	"github.com/bureau-foundation/unitext/lib/codepoint"
	"github.com/bureau-foundation/unitext/lib/fingerprint"
)

// textReport describes a piece of text in every unit the package
// family counts in.
type textReport struct {
	Encoding      string `json:"encoding" cbor:"encoding"`
	Bytes         int    `json:"bytes" cbor:"bytes"`
	CodeUnits     int    `json:"code_units" cbor:"code_units"`
	CodePoints    int    `json:"code_points" cbor:"code_points"`
	Supplementary int    `json:"supplementary" cbor:"supplementary"`
	UTF8Bytes     int    `json:"utf8_bytes" cbor:"utf8_bytes"`
	DisplayWidth  int    `json:"display_width" cbor:"display_width"`
	WellFormed    bool   `json:"well_formed" cbor:"well_formed"`
	Fingerprint   string `json:"fingerprint" cbor:"fingerprint"`
}

// analyze decodes input and builds its report. Lenient decoding is
// always used so ill-formed text can still be inspected; WellFormed
// records whether strict decoding would have accepted it.
func analyze(encoding textEncoding, input []byte) (*textReport, error) {
	transcoder := newTranscoder(false)
	units, err := transcoder.decode(encoding, input)
	if err != nil {
		return nil, fmt.Errorf("decoding %s input: %w", encoding, err)
	}
	utf8, err := transcoder.encode(encodingUTF8, units)
	if err != nil {
		return nil, fmt.Errorf("measuring UTF-8 form: %w", err)
	}

	return &textReport{
		Encoding:      string(encoding),
		Bytes:         len(input),
		CodeUnits:     len(units),
		CodePoints:    codepoint.CountCodePoints(units),
		Supplementary: codepoint.Supplementary(units),
		UTF8Bytes:     len(utf8),
		DisplayWidth:  ansi.StringWidth(string(utf8)),
		WellFormed:    codepoint.Validate(units) == nil,
		Fingerprint:   fingerprint.Sum(fingerprint.UTF8, utf8).String(),
	}, nil
}

// readReport parses the shared count/inspect flags, reads the input,
// and analyzes it.
func readReport(command string, flags *pflag.FlagSet, args []string, std streams) (*textReport, bool, error) {
	var (
		common       commonFlags
		encodingName string
		inputPath    string
	)
	common.register(flags)
	flags.StringVarP(&encodingName, "encoding", "e", "", "input encoding (default from config: convert.from)")
	flags.StringVarP(&inputPath, "input", "i", "-", "input file, or - for stdin")

	if help, err := parseFlags(flags, args, std.stderr); help || err != nil {
		return nil, help, err
	}

	cfg, err := common.load()
	if err != nil {
		return nil, false, err
	}
	if encodingName == "" {
		encodingName = cfg.Convert.From
	}
	encoding, err := parseEncoding(encodingName)
	if err != nil {
		return nil, false, fmt.Errorf("--encoding: %w", err)
	}

	input, err := readInput(inputPath, std.stdin)
	if err != nil {
		return nil, false, err
	}
	report, err := analyze(encoding, input)
	if err != nil {
		return nil, false, err
	}

	newCommandLogger(std.stderr, cfg.Log.Level).Debug("analyzed text",
		"command", command,
		"encoding", encoding,
		"code_units", report.CodeUnits,
	)
	return report, false, nil
}

// runCount prints the code unit and code point counts of the input.
func runCount(args []string, std streams) error {
	flags := pflag.NewFlagSet("count", pflag.ContinueOnError)
	report, help, err := readReport("count", flags, args, std)
	if help || err != nil {
		return err
	}
	fmt.Fprintf(std.stdout, "%d code units, %d code points\n", report.CodeUnits, report.CodePoints)
	return nil
}

// runInspect prints the full report in the requested format.
func runInspect(args []string, std streams) error {
	flags := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	var outputFormat string
	flags.StringVarP(&outputFormat, "format", "f", "text", "output format: text, json, or cbor")

	report, help, err := readReport("inspect", flags, args, std)
	if help || err != nil {
		return err
	}
	return writeReport(std.stdout, outputFormat, report)
}

func writeReport(w io.Writer, outputFormat string, report *textReport) error {
	switch outputFormat {
	case "text":
		fmt.Fprintf(w, "encoding:      %s\n", report.Encoding)
		fmt.Fprintf(w, "bytes:         %d\n", report.Bytes)
		fmt.Fprintf(w, "code units:    %d\n", report.CodeUnits)
		fmt.Fprintf(w, "code points:   %d\n", report.CodePoints)
		fmt.Fprintf(w, "supplementary: %d\n", report.Supplementary)
		fmt.Fprintf(w, "utf8 bytes:    %d\n", report.UTF8Bytes)
		fmt.Fprintf(w, "display width: %d\n", report.DisplayWidth)
		fmt.Fprintf(w, "well formed:   %t\n", report.WellFormed)
		fmt.Fprintf(w, "fingerprint:   %s\n", report.Fingerprint)
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "cbor":
		return codec.NewEncoder(w).Encode(report)
	default:
		return fmt.Errorf("unknown --format %q (want text, json, or cbor)", outputFormat)
	}
}
