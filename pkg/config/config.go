// Package config loads parse profiles: YAML files naming the C flavor,
// extra dialect flags, predeclared typedef names and preprocessor settings
// for a batch of sources.
//
// A profile looks like:
//
//	flavor: gnu
//	extensions: [clang-extensions]
//	typedefs: [size_t, FILE]
//	cpp:
//	  command: clang -E
//	  options: -DNDEBUG -I include
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/parser"
	"github.com/raymyers/cparse/pkg/preproc"
)

// DefaultFlavor is used when a profile does not name one.
const DefaultFlavor = "gnu"

// Profile is the decoded form of a profile file.
type Profile struct {
	Flavor     string   `yaml:"flavor"`
	Extensions []string `yaml:"extensions"`
	Typedefs   []string `yaml:"typedefs"`
	CPP        CPP      `yaml:"cpp"`
}

// CPP holds preprocessor settings. Command and Options are shell-quoted
// strings.
type CPP struct {
	Command  string `yaml:"command"`
	Options  string `yaml:"options"`
	Disabled bool   `yaml:"disabled"`
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{Flavor: DefaultFlavor}
}

// Load reads and validates a profile file.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode reads a profile from r. Unknown keys are rejected. An empty
// document yields the default profile.
func Decode(r io.Reader) (*Profile, error) {
	p := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if p.Flavor == "" {
		p.Flavor = DefaultFlavor
	}
	if _, err := p.Dialect(); err != nil {
		return nil, err
	}
	if _, err := p.Preprocessor(); err != nil {
		return nil, err
	}
	return p, nil
}

// Dialect combines the flavor preset with the extra extension flags.
func (p *Profile) Dialect() (dialect.Dialect, error) {
	d, err := dialect.Flavor(p.Flavor)
	if err != nil {
		return dialect.Std, err
	}
	extra, err := dialect.ParseFlags(p.Extensions)
	if err != nil {
		return dialect.Std, err
	}
	return d.With(extra), nil
}

// ParserConfig returns the parser configuration for this profile: the
// dialect's own predeclared names followed by the profile's typedefs.
func (p *Profile) ParserConfig() (parser.Config, error) {
	d, err := p.Dialect()
	if err != nil {
		return parser.Config{}, err
	}
	cfg := parser.ConfigFor(d)
	cfg.Typedefs = append(cfg.Typedefs, p.Typedefs...)
	return cfg, nil
}

// Preprocessor returns preprocessor options, or nil when preprocessing is
// disabled.
func (p *Profile) Preprocessor() (*preproc.Options, error) {
	if p.CPP.Disabled {
		return nil, nil
	}
	command, args, err := preproc.ParseCommand(p.CPP.Command)
	if err != nil {
		return nil, err
	}
	opts, err := preproc.SplitOptions(p.CPP.Options)
	if err != nil {
		return nil, err
	}
	return &preproc.Options{Command: command, Args: append(args, opts...)}, nil
}
