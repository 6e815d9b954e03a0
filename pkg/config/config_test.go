package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymyers/cparse/pkg/dialect"
)

func TestDecodeProfile(t *testing.T) {
	p, err := Decode(strings.NewReader(`
flavor: std
extensions: [clang-extensions]
typedefs: [size_t, FILE]
cpp:
  command: "clang -E -std=c11"
  options: '-DMSG="hello world" -I include'
`))
	require.NoError(t, err)

	d, err := p.Dialect()
	require.NoError(t, err)
	assert.Equal(t, dialect.Clang, d)

	cfg, err := p.ParserConfig()
	require.NoError(t, err)
	assert.Equal(t, dialect.Clang, cfg.Dialect)
	assert.Equal(t, []string{"size_t", "FILE"}, cfg.Typedefs)

	opts, err := p.Preprocessor()
	require.NoError(t, err)
	require.NotNil(t, opts)
	assert.Equal(t, "clang", opts.Command)
	assert.Equal(t, []string{"-E", "-std=c11", "-DMSG=hello world", "-I", "include"}, opts.Args)
}

func TestDefaultProfile(t *testing.T) {
	p, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultFlavor, p.Flavor)

	cfg, err := p.ParserConfig()
	require.NoError(t, err)
	assert.Equal(t, dialect.GNU, cfg.Dialect)
	assert.Equal(t, []string{"__builtin_va_list"}, cfg.Typedefs)

	opts, err := p.Preprocessor()
	require.NoError(t, err)
	require.NotNil(t, opts)
	assert.Empty(t, opts.Command)
}

func TestDisabledPreprocessor(t *testing.T) {
	p, err := Decode(strings.NewReader("cpp:\n  disabled: true\n"))
	require.NoError(t, err)
	opts, err := p.Preprocessor()
	require.NoError(t, err)
	assert.Nil(t, opts)
}

func TestInvalidProfiles(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown flavor", "flavor: c89\n"},
		{"unknown extension", "extensions: [msvc-extensions]\n"},
		{"unknown key", "flavour: gnu\n"},
		{"bad quoting", "cpp:\n  options: '\"-DX'\n"},
		{"not a mapping", "- gnu\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := Decode(strings.NewReader("flavor: c89\n"))
	assert.True(t, errors.Is(err, dialect.ErrUnknownDialect))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flavor: clang\ntypedefs: [T]\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	d, err := p.Dialect()
	require.NoError(t, err)
	assert.Equal(t, dialect.GNU|dialect.Clang, d)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
