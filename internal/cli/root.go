// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cli implements the bfc command line.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/bfc/backend"
	"github.com/ezrec/bfc/config"
)

const (
	appName    = "bfc"
	appVersion = "0.1.0"
)

// STDIO names standard input or output in place of a path.
const STDIO = "-"

// DEFAULT_BINARY is the executable built from standard input.
const DEFAULT_BINARY = "a.out"

// InferTarget returns the target implied by an output path: C source for
// standard output or a .c file, an executable otherwise.
func InferTarget(output string) string {
	if len(output) == 0 || output == STDIO || filepath.Ext(output) == ".c" {
		return config.TARGET_C
	}
	return config.TARGET_EXE
}

// session is a single invocation of the command.
type session struct {
	cfg    config.Config
	input  string
	output string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (s *session) fromStdin() bool {
	return len(s.input) == 0 || s.input == STDIO
}

func (s *session) toStdout() bool {
	return len(s.output) == 0 || s.output == STDIO
}

// inputName names the input in error messages.
func (s *session) inputName() string {
	if s.fromStdin() {
		return "<stdin>"
	}
	return s.input
}

// readSource reads the whole source program.
func (s *session) readSource() (source []byte, err error) {
	if s.fromStdin() {
		source, err = io.ReadAll(s.stdin)
		if err != nil {
			err = &ErrFile{Path: s.inputName(), Err: err}
		}
		return
	}

	source, err = os.ReadFile(s.input)
	return
}

// openOutput opens the output stream. done must be called when finished.
func (s *session) openOutput() (out io.Writer, done func() error, err error) {
	if s.toStdout() {
		out = s.stdout
		done = func() error { return nil }
		return
	}

	ouf, err := os.Create(s.output)
	if err != nil {
		return
	}

	out = ouf
	done = ouf.Close

	return
}

// translate converts the source to C. Nothing is written on failure.
func (s *session) translate(source []byte) (code []byte, err error) {
	buf := &bytes.Buffer{}

	err = s.cfg.Transducer().Translate(bytes.NewReader(source), buf)
	if err != nil {
		err = &ErrFile{Path: s.inputName(), Err: err}
		return
	}

	code = buf.Bytes()
	return
}

// writeCode writes the C program to the output.
func (s *session) writeCode(code []byte) (err error) {
	out, done, err := s.openOutput()
	if err != nil {
		return
	}
	defer func() {
		done_err := done()
		if err == nil {
			err = done_err
		}
	}()

	_, err = out.Write(code)

	return
}

// binary returns the executable path for the exe target.
func (s *session) binary() string {
	if !s.toStdout() {
		return s.output
	}

	if s.fromStdin() {
		return DEFAULT_BINARY
	}

	base := filepath.Base(s.input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// build compiles the C program from a temporary directory, and runs it if
// requested.
func (s *session) build(ctx context.Context, code []byte, binary string, run bool) (err error) {
	dir, err := os.MkdirTemp("", appName+"-")
	if err != nil {
		return
	}
	defer os.RemoveAll(dir)

	job := &backend.Job{
		Source: filepath.Join(dir, "main.c"),
		Binary: binary,
		Run:    run,
		Stdin:  s.stdin,
		Stdout: s.stdout,
		Stderr: s.stderr,
	}

	err = os.WriteFile(job.Source, code, 0o644)
	if err != nil {
		return
	}

	if s.cfg.Verbose {
		log.Printf("%v: building %v", appName, job.BinaryPath())
	}

	var be backend.Backend = s.cfg.Toolchain()
	err = be.Build(ctx, job)

	return
}

// emulate runs the source in process.
func (s *session) emulate(source []byte) (err error) {
	emu := s.cfg.Emulator()

	err = emu.Load(bytes.NewReader(source))
	if err != nil {
		err = &ErrFile{Path: s.inputName(), Err: err}
		return
	}

	out, done, err := s.openOutput()
	if err != nil {
		return
	}
	defer func() {
		done_err := done()
		if err == nil {
			err = done_err
		}
	}()

	buf := bufio.NewWriter(out)
	emu.Console.Input = s.stdin
	emu.Console.Output = buf

	err = emu.Run()
	if err != nil {
		err = &ErrFile{Path: s.inputName(), Err: err}
	}

	flush_err := buf.Flush()
	if err == nil {
		err = flush_err
	}
	if err == nil {
		err = emu.Console.Err()
	}

	return
}

// Execute performs the configured target.
func (s *session) Execute(ctx context.Context) (err error) {
	err = s.cfg.Validate()
	if err != nil {
		return
	}

	source, err := s.readSource()
	if err != nil {
		return
	}

	if s.cfg.Verbose {
		log.Printf("%v: %v: %d bytes, target %v", appName, s.inputName(), len(source), s.cfg.Target)
	}

	if s.cfg.Target == config.TARGET_EMULATE {
		err = s.emulate(source)
		return
	}

	code, err := s.translate(source)
	if err != nil {
		return
	}

	switch s.cfg.Target {
	case config.TARGET_C:
		err = s.writeCode(code)
	case config.TARGET_EXE:
		err = s.build(ctx, code, s.binary(), false)
	case config.TARGET_RUN:
		err = s.build(ctx, code, "", true)
	}

	return
}

// NewRootCmd creates the bfc command.
func NewRootCmd() *cobra.Command {
	flags := config.Defaults()
	configPath := ""
	outputPath := ""
	showVersion := false
	debug := false

	cmd := &cobra.Command{
		Use:           appName + " [flags] [input]",
		Short:         "Brainfuck to C compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) > 1 {
				err = ErrArgs
				return
			}

			if showVersion {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, appVersion)
				return
			}

			cfg := config.Defaults()
			cfg.Target = ""
			if len(configPath) != 0 {
				err = cfg.LoadFile(configPath)
				if err != nil {
					return
				}
			}

			changed := cmd.Flags().Changed
			if changed("verbose") {
				cfg.Verbose = flags.Verbose
			}
			if changed("target") {
				cfg.Target = flags.Target
			}
			if changed("tape-size") {
				cfg.TapeSize = flags.TapeSize
			}
			if changed("cell-bits") {
				cfg.CellBits = flags.CellBits
			}
			if changed("strict") {
				cfg.Strict = flags.Strict
			}
			if changed("cc") {
				cfg.CC = flags.CC
			}
			if debug {
				cfg.CFlags = slices.Clone(backend.DEBUG_CFLAGS)
			}
			if changed("cflags") {
				if debug {
					cfg.CFlags = append(cfg.CFlags, flags.CFlags...)
				} else {
					cfg.CFlags = slices.Clone(flags.CFlags)
				}
			}
			if len(cfg.Target) == 0 {
				cfg.Target = InferTarget(outputPath)
			}

			s := &session{
				cfg:    cfg,
				output: outputPath,
				stdin:  cmd.InOrStdin(),
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			if len(args) == 1 {
				s.input = args[0]
			}

			err = s.Execute(cmd.Context())

			return
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().BoolVar(&showVersion, "version", false, "print version")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", flags.Verbose, "log each step")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path, '-' for standard output")
	cmd.Flags().StringVarP(&flags.Target, "target", "t", flags.Target, "one of c, exe, run or emulate")
	cmd.Flags().IntVar(&flags.TapeSize, "tape-size", flags.TapeSize, "cells in the tape")
	cmd.Flags().IntVar(&flags.CellBits, "cell-bits", flags.CellBits, "cell width: 8, 16 or 32")
	cmd.Flags().BoolVar(&flags.Strict, "strict", flags.Strict, "reject unbalanced loops")
	cmd.Flags().StringVar(&flags.CC, "cc", flags.CC, "C compiler command")
	cmd.Flags().StringSliceVar(&flags.CFlags, "cflags", flags.CFlags, "C compiler flags")
	cmd.Flags().BoolVar(&debug, "debug", false, "build with debugging symbols instead of optimizing")
	cmd.Flags().StringVar(&configPath, "config", "", "settings file (.star, .yml or .yaml)")

	_ = cmd.MarkFlagFilename("output", "c")
	_ = cmd.MarkFlagFilename("config", "star", "yml", "yaml")

	return cmd
}
