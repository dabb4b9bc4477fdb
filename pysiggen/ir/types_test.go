package ir

import (
	"sort"
	"testing"
)

func TestGoIdentifier(t *testing.T) {
	tests := []struct {
		id      GoIdentifier
		zero    bool
		builtin bool
		str     string
	}{
		{GoIdentifier{}, true, false, ""},
		{GoIdentifier{Name: "int"}, false, true, "int"},
		{GoIdentifier{Name: "Duration", Package: "time"}, false, false, "time.Duration"},
		{GoIdentifier{Name: "Point", Package: "example.com/geom"}, false, false, "example.com/geom.Point"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.id.IsZero(); got != tt.zero {
				t.Errorf("IsZero() = %v, want %v", got, tt.zero)
			}
			if got := tt.id.IsBuiltin(); got != tt.builtin {
				t.Errorf("IsBuiltin() = %v, want %v", got, tt.builtin)
			}
			if got := tt.id.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestDocumentation_IsZero(t *testing.T) {
	if !(Documentation{}).IsZero() {
		t.Error("empty Documentation should be zero")
	}
	if (Documentation{Summary: "x"}).IsZero() {
		t.Error("Documentation with summary should not be zero")
	}
}

func TestSource_IsZero(t *testing.T) {
	if !(Source{}).IsZero() {
		t.Error("empty Source should be zero")
	}
	if (Source{Line: 3}).IsZero() {
		t.Error("Source with line should not be zero")
	}
}

func TestPackageInfo_IsZero(t *testing.T) {
	if !(PackageInfo{}).IsZero() {
		t.Error("empty PackageInfo should be zero")
	}
	if (PackageInfo{Name: "geom"}).IsZero() {
		t.Error("PackageInfo with name should not be zero")
	}
}

func TestBuiltinNames(t *testing.T) {
	for _, n := range []string{"int", "float64", "string", "bool", "byte", "rune", "[]byte", "any", "error"} {
		if !IsBuiltinName(n) {
			t.Errorf("IsBuiltinName(%q) = false", n)
		}
	}
	for _, n := range []string{"", "Duration", "List", "interface{}"} {
		if IsBuiltinName(n) {
			t.Errorf("IsBuiltinName(%q) = true", n)
		}
	}

	names := BuiltinNames()
	sort.Strings(names)
	if len(names) != len(builtinNames) {
		t.Errorf("BuiltinNames() returned %d names, want %d", len(names), len(builtinNames))
	}
}
