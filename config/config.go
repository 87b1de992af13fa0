// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config holds the settings of a bfc run, and loads them from
// Starlark or YAML files.
//
// A Starlark file assigns settings as globals. The constants of the default
// translation and toolchain (TAPE_SIZE, CELL_BITS, DUMP_CELLS, DUMP_ROW, CC,
// CFLAGS) are predeclared:
//
//	tape_size = TAPE_SIZE * 2
//	cell_bits = 16
//	strict = True
//	cflags = ["-O2", "-Wall"]
//
// Globals whose names begin with '_' are private to the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/bfc/backend"
	"github.com/ezrec/bfc/bf"
	"github.com/ezrec/bfc/emulator"
	"github.com/ezrec/bfc/internal"
)

const (
	TARGET_C       = "c"       // Write the C program.
	TARGET_EXE     = "exe"     // Build an executable.
	TARGET_RUN     = "run"     // Build and run an executable.
	TARGET_EMULATE = "emulate" // Run the source in the emulator.
)

var targets = []string{TARGET_C, TARGET_EXE, TARGET_RUN, TARGET_EMULATE}

// Config holds the settings of a run.
type Config struct {
	Verbose  bool     `yaml:"verbose"`   // If set, components log their actions.
	Target   string   `yaml:"target"`    // One of the TARGET_* values.
	TapeSize int      `yaml:"tape_size"` // Cells in the tape.
	CellBits int      `yaml:"cell_bits"` // Width of a cell.
	Strict   bool     `yaml:"strict"`    // If set, reject unbalanced loops.
	CC       string   `yaml:"cc"`        // C compiler command.
	CFlags   []string `yaml:"cflags"`    // C compiler flags.
}

// Defaults returns the settings of a run with no configuration.
func Defaults() Config {
	return Config{
		Target:   TARGET_C,
		TapeSize: bf.TAPE_SIZE,
		CellBits: bf.CELL_BITS,
		CC:       backend.DEFAULT_CC,
		CFlags:   slices.Clone(backend.DEFAULT_CFLAGS),
	}
}

// Validate checks the settings for consistency.
func (cfg *Config) Validate() (err error) {
	if !slices.Contains(targets, cfg.Target) {
		err = ErrTarget
		return
	}

	_, err = bf.CheckTape(cfg.TapeSize, cfg.CellBits)

	return
}

// Transducer returns a transducer for the settings.
func (cfg *Config) Transducer() *bf.Transducer {
	return &bf.Transducer{
		Verbose:  cfg.Verbose,
		Strict:   cfg.Strict,
		TapeSize: cfg.TapeSize,
		CellBits: cfg.CellBits,
	}
}

// Toolchain returns a build backend for the settings.
func (cfg *Config) Toolchain() *backend.Toolchain {
	return &backend.Toolchain{
		Verbose: cfg.Verbose,
		CC:      cfg.CC,
		Flags:   slices.Clone(cfg.CFlags),
	}
}

// Emulator returns an emulator for the settings.
func (cfg *Config) Emulator() *emulator.Emulator {
	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.TapeSize = cfg.TapeSize
	emu.CellBits = cfg.CellBits
	return emu
}

// Defines returns an iterator over the constants predeclared for Starlark.
func (cfg *Config) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		cfg.Transducer().Defines(),
		cfg.Toolchain().Defines(),
	)
}

// Load reads settings from path over the defaults, picking the format from
// the file extension.
func Load(path string) (cfg Config, err error) {
	cfg = Defaults()
	err = cfg.LoadFile(path)
	return
}

// LoadFile reads settings from path over the current settings.
func (cfg *Config) LoadFile(path string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrLoad{Path: path, Err: err}
		}
	}()

	ext := filepath.Ext(path)
	switch ext {
	case ".star", ".yml", ".yaml":
	default:
		err = ErrFormat(ext)
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if ext == ".star" {
		err = cfg.LoadStarlark(path, inf)
	} else {
		err = cfg.LoadYAML(inf)
	}

	return
}

// LoadYAML reads settings from a YAML document.
func (cfg *Config) LoadYAML(input io.Reader) (err error) {
	dec := yaml.NewDecoder(input)
	dec.KnownFields(true)

	err = dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}

	return
}

// predeclared converts the defines to Starlark values.
func (cfg *Config) predeclared() starlark.StringDict {
	pred := starlark.StringDict{}
	for key, str := range cfg.Defines() {
		value, err := strconv.Atoi(str)
		if err != nil {
			pred[key] = starlark.String(str)
			continue
		}
		pred[key] = starlark.MakeInt(value)
	}
	return pred
}

// LoadStarlark executes a Starlark file, and reads settings from its globals.
func (cfg *Config) LoadStarlark(filename string, src any) (err error) {
	thread := &starlark.Thread{
		Name: "config",
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("config: %v", msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, cfg.predeclared())
	if err != nil {
		return
	}

	for _, key := range globals.Keys() {
		if key[0] == '_' {
			continue
		}
		err = cfg.set(key, globals[key])
		if err != nil {
			return
		}
	}

	return
}

// set assigns a single setting from a Starlark value.
func (cfg *Config) set(key string, value starlark.Value) (err error) {
	switch key {
	case "verbose":
		err = asBool(key, value, &cfg.Verbose)
	case "strict":
		err = asBool(key, value, &cfg.Strict)
	case "tape_size":
		err = asInt(key, value, &cfg.TapeSize)
	case "cell_bits":
		err = asInt(key, value, &cfg.CellBits)
	case "target":
		err = asString(key, value, &cfg.Target)
	case "cc":
		err = asString(key, value, &cfg.CC)
	case "cflags":
		err = asStrings(key, value, &cfg.CFlags)
	default:
		err = ErrKey(key)
	}

	return
}

func asBool(key string, value starlark.Value, out *bool) (err error) {
	b, ok := value.(starlark.Bool)
	if !ok {
		err = &ErrType{Key: key, Want: "bool", Got: value.Type()}
		return
	}
	*out = bool(b)
	return
}

func asInt(key string, value starlark.Value, out *int) (err error) {
	n, err := starlark.AsInt32(value)
	if err != nil {
		err = &ErrType{Key: key, Want: "int", Got: value.Type()}
		return
	}
	*out = n
	return
}

func asString(key string, value starlark.Value, out *string) (err error) {
	str, ok := starlark.AsString(value)
	if !ok {
		err = &ErrType{Key: key, Want: "string", Got: value.Type()}
		return
	}
	*out = str
	return
}

func asStrings(key string, value starlark.Value, out *[]string) (err error) {
	seq, ok := value.(starlark.Indexable)
	if _, is_string := value.(starlark.String); is_string || !ok {
		err = &ErrType{Key: key, Want: "list of strings", Got: value.Type()}
		return
	}

	strs := make([]string, 0, seq.Len())
	for n := range seq.Len() {
		item := seq.Index(n)
		str, ok := starlark.AsString(item)
		if !ok {
			err = &ErrType{Key: fmt.Sprintf("%v[%d]", key, n), Want: "string", Got: item.Type()}
			return
		}
		strs = append(strs, str)
	}

	*out = strs
	return
}
