package dialect

import (
	"errors"
	"testing"
)

func TestFlavor(t *testing.T) {
	tests := []struct {
		name string
		want Dialect
	}{
		{"std", Std},
		{"gnu", GNU},
		{"clang", GNU | Clang},
		{" Clang ", GNU | Clang},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flavor(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Flavor(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFlavorUnknown(t *testing.T) {
	_, err := Flavor("msvc")
	if !errors.Is(err, ErrUnknownDialect) {
		t.Errorf("expected ErrUnknownDialect, got %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	d, err := ParseFlags([]string{"gnu-extensions", "clang-extensions"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Has(GNU) || !d.Has(Clang) {
		t.Errorf("expected both extensions, got %v", d)
	}
	if got := d.String(); got != "clang-extensions,gnu-extensions" {
		t.Errorf("String() = %q", got)
	}

	if _, err := ParseFlags([]string{"gnu-extensions", "ms-extensions"}); !errors.Is(err, ErrUnknownDialect) {
		t.Errorf("expected ErrUnknownDialect, got %v", err)
	}
}

func TestHas(t *testing.T) {
	if Std.Has(GNU) {
		t.Error("std must not have GNU")
	}
	if !GNU.Has(Std) {
		t.Error("every dialect has the empty set")
	}
	if (GNU).Has(GNU | Clang) {
		t.Error("GNU alone must not satisfy GNU|Clang")
	}
	if Std.String() != "std" {
		t.Errorf("Std.String() = %q", Std.String())
	}
}
