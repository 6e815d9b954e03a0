// Package dialect describes which grammar extensions a parse accepts.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Dialect is a set of enabled grammar extensions. The zero value is
// strict ISO C11.
type Dialect uint8

const (
	// GNU enables GNU C extensions (attributes, asm, typeof, statement
	// expressions, case ranges, ...).
	GNU Dialect = 1 << iota
	// Clang enables Clang extensions (block pointers, nullability
	// qualifiers, availability attributes).
	Clang
)

// Std is strict C11 with no extensions.
const Std Dialect = 0

// ErrUnknownDialect is returned for an unrecognized extension or flavor name.
var ErrUnknownDialect = errors.New("unknown dialect")

var flagNames = map[string]Dialect{
	"gnu-extensions":   GNU,
	"clang-extensions": Clang,
}

var flavors = map[string]Dialect{
	"std":   Std,
	"gnu":   GNU,
	"clang": GNU | Clang,
}

// Has reports whether every extension in f is enabled.
func (d Dialect) Has(f Dialect) bool {
	return d&f == f
}

// With returns d with the extensions in f enabled.
func (d Dialect) With(f Dialect) Dialect {
	return d | f
}

func (d Dialect) String() string {
	if d == Std {
		return "std"
	}
	var names []string
	for name, f := range flagNames {
		if d.Has(f) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// ParseFlag returns the extension named by an extension flag such as
// "gnu-extensions".
func ParseFlag(name string) (Dialect, error) {
	if f, ok := flagNames[strings.TrimSpace(name)]; ok {
		return f, nil
	}
	return Std, fmt.Errorf("%w: extension %q", ErrUnknownDialect, name)
}

// ParseFlags combines several extension flag names into one Dialect.
func ParseFlags(names []string) (Dialect, error) {
	var d Dialect
	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return Std, err
		}
		d = d.With(f)
	}
	return d, nil
}

// Flavor returns the dialect preset for a flavor name: std, gnu or clang.
func Flavor(name string) (Dialect, error) {
	if d, ok := flavors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return Std, fmt.Errorf("%w: flavor %q", ErrUnknownDialect, name)
}

// FlavorNames lists the accepted flavor names.
func FlavorNames() []string {
	return []string{"std", "gnu", "clang"}
}
