package backend

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bfc/bf"
	"github.com/ezrec/bfc/emulator"
)

const helloWorld = `++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.`

func needCompiler(t *testing.T) {
	t.Helper()

	_, err := exec.LookPath(DEFAULT_CC)
	if err != nil {
		t.Skipf("%v: %v", DEFAULT_CC, err)
	}
}

// compileRun translates the source, builds it, and runs it with input.
func compileRun(tr *bf.Transducer, source string, input []byte, t *testing.T) (output []byte, err error) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c")

	code := &bytes.Buffer{}
	err = tr.Translate(strings.NewReader(source), code)
	if err != nil {
		return
	}

	err = os.WriteFile(path, code.Bytes(), 0o644)
	if err != nil {
		return
	}

	stdout := &bytes.Buffer{}
	job := &Job{
		Source: path,
		Run:    true,
		Stdin:  bytes.NewReader(input),
		Stdout: stdout,
	}

	tc := &Toolchain{}
	err = tc.Build(context.Background(), job)
	output = stdout.Bytes()

	return
}

func TestJob_BinaryPath(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("out/prog", (&Job{Source: "out/prog.c"}).BinaryPath())
	assert.Equal("prog", (&Job{Source: "prog"}).BinaryPath())
	assert.Equal("a.out", (&Job{Source: "prog.c", Binary: "a.out"}).BinaryPath())
}

func TestToolchain_Command(t *testing.T) {
	assert := assert.New(t)

	tc := &Toolchain{}
	cmd := tc.Command(context.Background(), &Job{Source: "hello.c"})
	assert.Equal([]string{DEFAULT_CC, "-O3", "-o", "hello", "hello.c"}, cmd.Args)

	tc = &Toolchain{CC: "gcc", Flags: DEBUG_CFLAGS}
	cmd = tc.Command(context.Background(), &Job{Source: "hello.c", Binary: "hi"})
	assert.Equal([]string{"gcc", "-g", "-o", "hi", "hello.c"}, cmd.Args)

	tc = &Toolchain{Flags: []string{}}
	cmd = tc.Command(context.Background(), &Job{Source: "x.c"})
	assert.Equal([]string{DEFAULT_CC, "-o", "x", "x.c"}, cmd.Args)

	defines := map[string]string{}
	for key, value := range (&Toolchain{Flags: []string{"-O2", "-Wall"}}).Defines() {
		defines[key] = value
	}
	assert.Equal(map[string]string{"CC": DEFAULT_CC, "CFLAGS": "-O2 -Wall"}, defines)
}

func TestToolchain_JobErrors(t *testing.T) {
	assert := assert.New(t)

	tc := &Toolchain{}
	assert.ErrorIs(tc.Build(context.Background(), &Job{}), ErrSourceMissing)
	assert.ErrorIs(tc.Build(context.Background(), &Job{Source: "prog"}), ErrBinaryClash)
}

func TestToolchain_MissingCompiler(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.c")
	assert.NoError(os.WriteFile(path, []byte("int main(void) { return 0; }\n"), 0o644))

	tc := &Toolchain{CC: filepath.Join(dir, "no-such-cc")}
	err := tc.Build(context.Background(), &Job{Source: path})

	var toolchain *ErrToolchain
	assert.True(errors.As(err, &toolchain))
}

func TestToolchain_Exit(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "exit.c")
	assert.NoError(os.WriteFile(path, []byte("int main(void) { return 3; }\n"), 0o644))

	tc := &Toolchain{}
	err := tc.Build(context.Background(), &Job{Source: path, Run: true})
	assert.Equal(ErrExit(3), err)

	_, err = os.Stat(filepath.Join(dir, "exit"))
	assert.NoError(err)
}

func TestToolchain_Empty(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	output, err := compileRun(&bf.Transducer{}, "", nil, t)
	assert.NoError(err)
	assert.Equal(0, len(output))
}

func TestToolchain_DecDump(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	output, err := compileRun(&bf.Transducer{}, "+$", nil, t)
	assert.NoError(err)

	rows := strings.Split(strings.TrimSuffix(string(output), "\n"), "\n")
	assert.Equal(16, len(rows))
	assert.Equal("000-015:   1 "+strings.Repeat("  0 ", 15), rows[0])
	for _, row := range rows[1:] {
		assert.Equal(strings.Repeat("  0 ", 16), row[9:])
	}
}

func TestToolchain_Get(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	output, err := compileRun(&bf.Transducer{}, ",.", []byte{65}, t)
	assert.NoError(err)
	assert.Equal([]byte("A"), output)

	output, err = compileRun(&bf.Transducer{}, ",.", nil, t)
	assert.NoError(err)
	assert.Equal([]byte{0}, output)

	output, err = compileRun(&bf.Transducer{}, ",.", []byte{0xff}, t)
	assert.NoError(err)
	assert.Equal([]byte{0xff}, output)
}

func TestToolchain_Clear(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	output, err := compileRun(&bf.Transducer{}, "+++++[-]$", nil, t)
	assert.NoError(err)
	assert.True(strings.HasPrefix(string(output), "000-015:   0   0 "))
}

func TestToolchain_HexDump(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	output, err := compileRun(&bf.Transducer{}, "#", nil, t)
	assert.NoError(err)

	re := regexp.MustCompile(`^[0-9]{3}-[0-9]{3}: ([0-9a-f]{2} ){16}$`)
	rows := strings.Split(string(output), "\n")
	assert.Equal(17, len(rows))
	for _, row := range rows[:16] {
		assert.Regexp(re, row)
	}
}

func TestToolchain_Unbalanced(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	for _, source := range []string{"]", "[", "+[[-]"} {
		_, err := compileRun(&bf.Transducer{}, source, nil, t)

		var toolchain *ErrToolchain
		assert.True(errors.As(err, &toolchain), source)
	}
}

// The emulator and the compiled program agree on output.
func TestToolchain_Emulator(t *testing.T) {
	assert := assert.New(t)
	needCompiler(t)

	tests := []struct {
		bits   int
		source string
		input  string
	}{
		{8, helloWorld, ""},
		{8, ",[.,]", "echo me"},
		{8, "-#$", ""},
		{16, "-#$", ""},
		{32, "->+>-#$", ""},
		{8, "+++[>+++++<-]>[>++<-]#,.$", "Q"},
	}

	for _, test := range tests {
		tr := &bf.Transducer{CellBits: test.bits}
		compiled, err := compileRun(tr, test.source, []byte(test.input), t)
		assert.NoError(err, test.source)

		emu := emulator.NewEmulator()
		emu.CellBits = test.bits
		emu.Program, err = emulator.Parse(strings.NewReader(test.source))
		assert.NoError(err, test.source)
		assert.NoError(emu.Reset())

		emulated := &bytes.Buffer{}
		emu.Console.Input = strings.NewReader(test.input)
		emu.Console.Output = emulated
		assert.NoError(emu.Run(), test.source)

		assert.Equal(string(compiled), emulated.String(), test.source)
	}
}
