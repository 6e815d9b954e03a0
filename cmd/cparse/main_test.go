package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymyers/cparse/pkg/dialect"
)

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	expectedFlags := []string{"dparse", "preprocess", "no-cpp", "verbose", "jobs", "config",
		"flavor", "extension", "typedef", "cpp", "cpp-options", "include", "define", "undefine"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag --%s to exist", flagName)
		}
	}
}

func TestNormalizeFlags(t *testing.T) {
	got := normalizeFlags([]string{"-dparse", "-E", "a.c"})
	assert.Equal(t, []string{"--dparse", "-E", "a.c"}, got)
}

func TestNoArgsPrintsHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Usage:")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParseDump(t *testing.T) {
	testFile := writeFile(t, t.TempDir(), "test.c", "int main() { return 0; }\n")

	out, errOut, err := execute(t, "--no-cpp", testFile)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "TranslationUnit")
	assert.Contains(t, out, "FunctionDefinition")
	assert.Contains(t, out, "Identifier \"main\"")
	assert.Contains(t, out, "Statement Return")
}

func TestDParseWritesFile(t *testing.T) {
	testFile := writeFile(t, t.TempDir(), "test.c", "typedef int T; T x;\n")

	out, errOut, err := execute(t, "--no-cpp", "--dparse", testFile)
	require.NoError(t, err, errOut)

	content, err := os.ReadFile(strings.TrimSuffix(testFile, ".c") + ".parsed.txt")
	require.NoError(t, err)
	assert.Equal(t, out, string(content))
	assert.Contains(t, out, "TypeSpecifier TypedefName")
}

func TestPreprocessedInputSkipsPreprocessor(t *testing.T) {
	testFile := writeFile(t, t.TempDir(), "unit.i", "# 1 \"unit.c\"\nint x;\n")

	// An unusable preprocessor proves .i files are read directly.
	out, errOut, err := execute(t, "--cpp", "/nonexistent/cpp", testFile)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "Identifier \"x\"")
}

func TestParsedOutputFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"test.c", "test.parsed.txt"},
		{"dir/unit.i", "dir/unit.parsed.txt"},
		{"noext", "noext.parsed.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parsedOutputFilename(tt.in))
	}
}

func TestMultipleFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		files = append(files, writeFile(t, dir, name+".c", "int "+name+";\n"))
	}

	out, errOut, err := execute(t, append([]string{"--no-cpp", "-j", "3"}, files...)...)
	require.NoError(t, err, errOut)

	last := -1
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		idx := strings.Index(out, "Identifier \""+name+"\"")
		require.GreaterOrEqual(t, idx, 0, name)
		assert.Greater(t, idx, last, "output for %s out of order", name)
		last = idx
	}
}

func TestParseErrorReported(t *testing.T) {
	testFile := writeFile(t, t.TempDir(), "bad.c", "int main() {\n  return 0\n}\n")

	_, errOut, err := execute(t, "--no-cpp", testFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParseFailed))
	assert.Contains(t, errOut, "cparse: error: ")
	assert.Contains(t, errOut, "bad.c: line 3, col 1: syntax error")
}

func TestFlavorGating(t *testing.T) {
	testFile := writeFile(t, t.TempDir(), "block.c", "void (^cb)(int);\n")

	_, errOut, err := execute(t, "--no-cpp", testFile)
	require.Error(t, err)
	assert.Contains(t, errOut, "unsupported extension")

	out, errOut, err := execute(t, "--no-cpp", "--flavor", "clang", testFile)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "PointerDeclarator Block")

	out, errOut, err = execute(t, "--no-cpp", "--extension", "clang-extensions", testFile)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "PointerDeclarator Block")
}

func TestTypedefFlag(t *testing.T) {
	testFile := writeFile(t, t.TempDir(), "cast.c", "int f(void) { return (size_t) + 1; }\n")

	out, errOut, err := execute(t, "--no-cpp", "-T", "size_t", testFile)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "CastExpression")

	out, errOut, err = execute(t, "--no-cpp", testFile)
	require.NoError(t, err, errOut)
	assert.NotContains(t, out, "CastExpression")
}

func TestUnknownFlavor(t *testing.T) {
	_, errOut, err := execute(t, "--flavor", "c89", "x.c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dialect.ErrUnknownDialect))
	assert.Contains(t, errOut, "unknown dialect")
}

func TestConfigProfile(t *testing.T) {
	dir := t.TempDir()
	profile := writeFile(t, dir, "profile.yaml",
		"flavor: clang\ntypedefs: [handler_t]\ncpp:\n  disabled: true\n")
	testFile := writeFile(t, dir, "unit.c", "handler_t (^h)(void);\n")

	out, errOut, err := execute(t, "--config", profile, testFile)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "TypeSpecifier TypedefName")
	assert.Contains(t, out, "Identifier \"handler_t\"")
	assert.Contains(t, out, "PointerDeclarator Block")

	// An explicit flag overrides the profile.
	_, errOut, err = execute(t, "--config", profile, "--flavor", "std", testFile)
	require.Error(t, err)
	assert.Contains(t, errOut, "unsupported extension")
}

func TestVerboseProgress(t *testing.T) {
	testFile := writeFile(t, t.TempDir(), "v.c", "int v;\n")

	_, errOut, err := execute(t, "--no-cpp", "-v", testFile)
	require.NoError(t, err)
	assert.Contains(t, errOut, "cparse: dialect gnu-extensions")
	assert.Contains(t, errOut, "cparse: parsing "+testFile)
}

func fakePreprocessor(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script preprocessor requires a POSIX shell")
	}
	script := filepath.Join(t.TempDir(), "fakecpp")
	// Replaces WIDTH with 8 in the last argument.
	body := "#!/bin/sh\nfor a; do last=$a; done\nsed 's/WIDTH/8/g' \"$last\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script
}

func TestExternalPreprocessor(t *testing.T) {
	script := fakePreprocessor(t)
	testFile := writeFile(t, t.TempDir(), "pp.c", "int a[WIDTH];\n")

	out, errOut, err := execute(t, "--cpp", script, "-E", testFile)
	require.NoError(t, err, errOut)
	assert.Equal(t, "int a[8];\n", out)

	out, errOut, err = execute(t, "--cpp", script, "--cpp-options", "-DUNUSED -std=c11", testFile)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "Integer \"8\"")
}
