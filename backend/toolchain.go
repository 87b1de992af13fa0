// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package backend

import (
	"context"
	"errors"
	"iter"
	"log"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

const (
	DEFAULT_CC = "cc" // Compiler used when Toolchain.CC is empty.
)

var (
	DEFAULT_CFLAGS = []string{"-O3"} // Flags used when Toolchain.Flags is nil.
	DEBUG_CFLAGS   = []string{"-g"}  // Flags for a debuggable executable.
)

// Toolchain builds executables with a system C compiler.
type Toolchain struct {
	Verbose bool     // If set, logs each command.
	CC      string   // Compiler command. Empty selects DEFAULT_CC.
	Flags   []string // Compiler flags. Nil selects DEFAULT_CFLAGS.

	lock sync.Mutex
}

var _ Backend = (*Toolchain)(nil)

func (tc *Toolchain) cc() string {
	if len(tc.CC) == 0 {
		return DEFAULT_CC
	}
	return tc.CC
}

func (tc *Toolchain) flags() []string {
	if tc.Flags == nil {
		return DEFAULT_CFLAGS
	}
	return tc.Flags
}

// Defines returns an iterator over the toolchain settings.
func (tc *Toolchain) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"CC":     tc.cc(),
		"CFLAGS": strings.Join(tc.flags(), " "),
	})
}

// Command returns the compiler command for the job.
func (tc *Toolchain) Command(ctx context.Context, job *Job) (cmd *exec.Cmd) {
	args := slices.Clone(tc.flags())
	args = append(args, "-o", job.BinaryPath(), job.Source)

	cmd = exec.CommandContext(ctx, tc.cc(), args...)

	return
}

// executable returns a path to binary that exec will not search $PATH for.
func executable(binary string) string {
	if strings.ContainsRune(binary, filepath.Separator) {
		return binary
	}
	return "." + string(filepath.Separator) + binary
}

// Build compiles the job's source, and runs the executable if requested.
// Builds are serialized.
func (tc *Toolchain) Build(ctx context.Context, job *Job) (err error) {
	if len(job.Source) == 0 {
		err = ErrSourceMissing
		return
	}

	binary := job.BinaryPath()
	if filepath.Clean(binary) == filepath.Clean(job.Source) {
		err = ErrBinaryClash
		return
	}

	tc.lock.Lock()
	defer tc.lock.Unlock()

	cmd := tc.Command(ctx, job)
	if tc.Verbose {
		log.Printf("backend: %v", cmd)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		err = &ErrToolchain{Command: cmd.String(), Output: string(output), Err: err}
		return
	}

	if !job.Run {
		return
	}

	run := exec.CommandContext(ctx, executable(binary))
	run.Stdin = job.Stdin
	run.Stdout = job.Stdout
	run.Stderr = job.Stderr
	if run.Stderr == nil {
		run.Stderr = os.Stderr
	}

	if tc.Verbose {
		log.Printf("backend: %v", run)
	}

	err = run.Run()

	var exit *exec.ExitError
	if errors.As(err, &exit) && exit.ExitCode() > 0 {
		err = ErrExit(exit.ExitCode())
	}

	return
}
