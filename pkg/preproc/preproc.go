// Package preproc runs an external C preprocessor over a source file before
// it is handed to the parser. Macro expansion itself is left to the system
// compiler driver.
package preproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrNoPreprocessor is returned when no command was configured and none of
// the default candidates is on PATH.
var ErrNoPreprocessor = errors.New("no C preprocessor found (tried: cc, gcc, clang)")

// Options configures the preprocessing step.
type Options struct {
	Command      string            // preprocessor executable; empty means search defaults
	Args         []string          // extra arguments passed before the input file
	IncludePaths []string          // -I directories
	Defines      map[string]string // -D macros (name -> value, empty string for simple define)
	Undefines    []string          // -U macros
}

// SplitOptions splits a shell-style option string such as
// `-DFOO="a b" -I include` into arguments.
func SplitOptions(s string) ([]string, error) {
	args, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("invalid preprocessor options %q: %w", s, err)
	}
	return args, nil
}

// ParseCommand splits a command string like "clang -E -std=c11" into the
// executable and its leading arguments. A trailing -E is implied and need
// not be given.
func ParseCommand(s string) (string, []string, error) {
	words, err := SplitOptions(s)
	if err != nil {
		return "", nil, err
	}
	if len(words) == 0 {
		return "", nil, nil
	}
	return words[0], words[1:], nil
}

// Arguments returns the command line, without the executable, used to
// preprocess filename.
func (o *Options) Arguments(filename string) []string {
	args := []string{"-E"}
	if o != nil {
		for _, a := range o.Args {
			if a != "-E" {
				args = append(args, a)
			}
		}
		for _, path := range o.IncludePaths {
			args = append(args, "-I"+path)
		}
		for _, name := range slices.Sorted(maps.Keys(o.Defines)) {
			if value := o.Defines[name]; value == "" {
				args = append(args, "-D"+name)
			} else {
				args = append(args, "-D"+name+"="+value)
			}
		}
		for _, name := range o.Undefines {
			args = append(args, "-U"+name)
		}
	}
	return append(args, filename)
}

// Preprocess runs the preprocessor on filename and returns its output.
// The command runs in the caller's working directory, so a relative
// filename and relative include paths resolve the way they do for cc.
func Preprocess(ctx context.Context, filename string, opts *Options) (string, error) {
	command := ""
	if opts != nil {
		command = opts.Command
	}
	if command == "" {
		command = findPreprocessor()
		if command == "" {
			return "", ErrNoPreprocessor
		}
	}

	cmd := exec.CommandContext(ctx, command, opts.Arguments(filename)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("preprocessing %s failed: %w\n%s", filename, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// PreprocessString preprocesses C source provided as a string by writing it
// to a temporary file named after filename.
func PreprocessString(ctx context.Context, source, filename string, opts *Options) (string, error) {
	dir, err := os.MkdirTemp("", "cparse-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	baseName := filepath.Base(filename)
	if baseName == "" || baseName == "." || baseName == string(filepath.Separator) {
		baseName = "source.c"
	}
	tmpFile := filepath.Join(dir, baseName)
	if err := os.WriteFile(tmpFile, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	return Preprocess(ctx, tmpFile, opts)
}

// NeedsPreprocessing reports whether filename should go through the
// preprocessor. Files ending in .i are considered already preprocessed.
func NeedsPreprocessing(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) != ".i"
}

func findPreprocessor() string {
	for _, cmd := range []string{"cc", "gcc", "clang"} {
		if path, err := exec.LookPath(cmd); err == nil {
			return path
		}
	}
	return ""
}
