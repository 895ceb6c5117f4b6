// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/unitext/lib/codepoint"
	"github.com/bureau-foundation/unitext/lib/fingerprint"
	"github.com/bureau-foundation/unitext/lib/sealed"
	"github.com/bureau-foundation/unitext/lib/secret"
	"github.com/bureau-foundation/unitext/lib/utf8bridge"
)

// runSecret reads a secret into locked memory, round-trips it through
// secure UTF-16 and code point sequences, and prints a fingerprint or
// an age-sealed ciphertext.
func runSecret(args []string, std streams) error {
	flags := pflag.NewFlagSet("secret", pflag.ContinueOnError)
	var (
		common     commonFlags
		secretFile string
		recipients []string
	)
	common.register(flags)
	flags.StringVar(&secretFile, "secret-file", "", "read the secret from a file, or - for one line of stdin (default: terminal prompt)")
	flags.StringArrayVar(&recipients, "recipient", nil, "age1... public key to seal the secret to (repeatable; default from config)")

	if help, err := parseFlags(flags, args, std.stderr); help || err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		recipients, err = cfg.RecipientKeys()
		if err != nil {
			return err
		}
	}

	logger := newCommandLogger(std.stderr, cfg.Log.Level).With("command", "secret")

	plaintext, err := readSecret(secretFile, std)
	if err != nil {
		return err
	}
	defer plaintext.Close()

	roundTripped, points, err := secureRoundTrip(plaintext, cfg.IsStrict())
	if err != nil {
		return err
	}
	defer roundTripped.Close()

	if !roundTripped.Equal(plaintext) {
		// Only ill-formed input that lenient decoding repaired can
		// differ after the round trip.
		logger.Warn("secret was not well-formed UTF-8; U+FFFD substituted")
	}

	digest := fingerprint.Buffer(roundTripped)
	logger.Info("secret transcoded",
		"fingerprint", digest.Short(),
		"code_points", points,
		"bytes", roundTripped.Len(),
	)

	if len(recipients) == 0 {
		fmt.Fprintf(std.stdout, "%s %d\n", digest.String(), points)
		return nil
	}

	ciphertext, err := sealed.Seal(roundTripped, recipients)
	if err != nil {
		return fmt.Errorf("sealing secret: %w", err)
	}
	fmt.Fprintln(std.stdout, ciphertext)
	return nil
}

// readSecret reads from path when set, otherwise prompts on the
// terminal without echo. A non-terminal stdin is read as one line.
func readSecret(path string, std streams) (*secret.Buffer, error) {
	if path != "" {
		if path == "-" {
			return secret.ReadLine(std.stdin)
		}
		return secret.ReadFromPath(path)
	}

	file, ok := std.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return secret.ReadLine(std.stdin)
	}

	fmt.Fprint(std.stderr, "Secret: ")
	data, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(std.stderr)
	if err != nil {
		secret.Zero(data)
		return nil, fmt.Errorf("reading secret from terminal: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("secret is empty")
	}
	return secret.NewFromBytes(data)
}

// secureRoundTrip converts plaintext UTF-8 to UTF-16 to code points and
// back, every intermediate in locked memory. It returns the final UTF-8
// buffer and the code point count.
func secureRoundTrip(plaintext *secret.Buffer, strict bool) (*secret.Buffer, int, error) {
	bridge := utf8bridge.New(utf8bridge.Config{
		Codec: utf8bridge.TextCodec{Strict: strict},
	})

	units, err := bridge.DecodeSecure(plaintext.Bytes())
	if err != nil {
		return nil, 0, fmt.Errorf("decoding secret to UTF-16: %w", err)
	}
	defer units.Close()

	points, err := codepoint.DecodeSecure(units.Elements(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding secret to code points: %w", err)
	}
	defer points.Close()

	reencoded, err := codepoint.EncodeSecure(points.Elements(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("encoding secret to UTF-16: %w", err)
	}
	defer reencoded.Close()

	output, err := bridge.EncodeSecure(reencoded.Elements())
	if err != nil {
		return nil, 0, fmt.Errorf("encoding secret to UTF-8: %w", err)
	}
	return output, points.Len(), nil
}
