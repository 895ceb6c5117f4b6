// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/unitext/lib/compress"
)

// runConvert transcodes the input between encodings.
func runConvert(args []string, std streams) error {
	flags := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	var (
		common     commonFlags
		from       string
		to         string
		inputPath  string
		outputPath string
		strict     bool
		compressed string
		decompress string
	)
	common.register(flags)
	flags.StringVar(&from, "from", "", "input encoding (default from config: utf8)")
	flags.StringVar(&to, "to", "", "output encoding (default from config: utf16le)")
	flags.StringVarP(&inputPath, "input", "i", "-", "input file, or - for stdin")
	flags.StringVarP(&outputPath, "output", "o", "-", "output file, or - for stdout")
	flags.BoolVar(&strict, "strict", false, "reject unpaired surrogates and invalid UTF-8")
	flags.StringVar(&compressed, "compress", "none", "compress output: none, lz4, or zstd")
	flags.StringVar(&decompress, "decompress", "none", "decompress input: none, lz4, zstd, or auto")

	if help, err := parseFlags(flags, args, std.stderr); help || err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if from == "" {
		from = cfg.Convert.From
	}
	if to == "" {
		to = cfg.Convert.To
	}
	if !flags.Changed("strict") {
		strict = cfg.IsStrict()
	}

	fromEncoding, err := parseEncoding(from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	toEncoding, err := parseEncoding(to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	outputCompression, err := compress.Parse(compressed)
	if err != nil {
		return fmt.Errorf("--compress: %w", err)
	}

	logger := newCommandLogger(std.stderr, cfg.Log.Level).With(
		"command", "convert",
		"from", fromEncoding,
		"to", toEncoding,
		"strict", strict,
	)

	input, err := readInput(inputPath, std.stdin)
	if err != nil {
		return err
	}
	input, err = decompressInput(input, decompress)
	if err != nil {
		return err
	}

	transcoder := newTranscoder(strict)
	units, err := transcoder.decode(fromEncoding, input)
	if err != nil {
		return fmt.Errorf("decoding %s input: %w", fromEncoding, err)
	}
	output, err := transcoder.encode(toEncoding, units)
	if err != nil {
		return fmt.Errorf("encoding %s output: %w", toEncoding, err)
	}

	encodedLength := len(output)
	output, err = compress.Compress(output, outputCompression)
	if err != nil {
		return err
	}

	if err := writeOutput(outputPath, std.stdout, output); err != nil {
		return err
	}
	logger.Debug("converted text",
		"input_bytes", len(input),
		"code_units", len(units),
		"encoded_bytes", encodedLength,
		"output_bytes", len(output),
		"compression", outputCompression,
	)
	return nil
}

// decompressInput undoes the named compression. "auto" recognizes zstd
// and LZ4 frames by magic number and passes anything else through.
func decompressInput(data []byte, name string) ([]byte, error) {
	if name == "auto" {
		result, _, err := compress.DecompressAuto(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing input: %w", err)
		}
		return result, nil
	}
	algorithm, err := compress.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("--decompress: %w", err)
	}
	result, err := compress.Decompress(data, algorithm)
	if err != nil {
		return nil, fmt.Errorf("decompressing input: %w", err)
	}
	return result, nil
}

// readInput reads all of path, or of stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "-" || path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
