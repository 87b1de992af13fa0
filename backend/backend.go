// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package backend turns generated C source into an executable, and optionally
// runs it.
package backend

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// Job describes a single build.
type Job struct {
	Source string // Path of the generated C source.
	Binary string // Path of the executable. Empty selects Source without its extension.
	Run    bool   // If set, runs the executable after building it.

	Stdin  io.Reader // Standard input of the executable.
	Stdout io.Writer // Standard output of the executable.
	Stderr io.Writer // Standard error of the executable.
}

// BinaryPath returns the path of the executable the job produces.
func (job *Job) BinaryPath() string {
	if len(job.Binary) != 0 {
		return job.Binary
	}

	return strings.TrimSuffix(job.Source, filepath.Ext(job.Source))
}

// Backend is a build capability for generated source.
type Backend interface {
	// Build produces the executable for the job, and runs it if requested.
	Build(ctx context.Context, job *Job) error
}
