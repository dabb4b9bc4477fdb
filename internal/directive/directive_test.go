package directive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func parseFiles(t *testing.T, files map[string]string) (*token.FileSet, []*ast.File) {
	t.Helper()
	fset := token.NewFileSet()
	var parsed []*ast.File
	for name, src := range files {
		f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		parsed = append(parsed, f)
	}
	return fset, parsed
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantDefs []struct {
			name     string
			funcName string
		}
		wantSkips []string
		wantErr   string // expected error substring, empty if none
	}{
		{
			name: "single unnamed def",
			files: map[string]string{
				"geom.go": `package geom

//pysig:def
func Scale(by float64) {}
`,
			},
			wantDefs: []struct {
				name     string
				funcName string
			}{
				{name: "", funcName: "Scale"},
			},
		},
		{
			name: "named def",
			files: map[string]string{
				"geom.go": `package geom

// Scale scales things.
//
//pysig:def scale
func Scale(by float64) {}
`,
			},
			wantDefs: []struct {
				name     string
				funcName string
			}{
				{name: "scale", funcName: "Scale"},
			},
		},
		{
			name: "multiple defs and skip",
			files: map[string]string{
				"a.go": `package geom

//pysig:def area
func Area(w, h float64) float64 { return w * h }

//pysig:skip
func Internal() {}
`,
				"b.go": `package geom

//pysig:def
func Origin() {}
`,
			},
			wantDefs: []struct {
				name     string
				funcName string
			}{
				{name: "area", funcName: "Area"},
				{name: "", funcName: "Origin"},
			},
			wantSkips: []string{"Internal"},
		},
		{
			name: "plain comments are ignored",
			files: map[string]string{
				"geom.go": `package geom

// Scale is not documented.
func Scale() {}
`,
			},
		},
		{
			name: "directive on method",
			files: map[string]string{
				"geom.go": `package geom

type P struct{}

//pysig:def
func (P) Scale() {}
`,
			},
			wantErr: "must be on a package-level function, not a method",
		},
		{
			name: "unknown directive",
			files: map[string]string{
				"geom.go": `package geom

//pysig:export
func Scale() {}
`,
			},
			wantErr: "unknown directive //pysig:export",
		},
		{
			name: "directive not followed by function",
			files: map[string]string{
				"geom.go": `package geom

//pysig:def

var x = 1
`,
			},
			wantErr: "must be followed by a function declaration",
		},
		{
			name: "too many names",
			files: map[string]string{
				"geom.go": `package geom

//pysig:def a b
func Scale() {}
`,
			},
			wantErr: "takes at most one name",
		},
		{
			name: "def and skip on same function",
			files: map[string]string{
				"geom.go": `package geom

//pysig:def
//pysig:skip
func Scale() {}
`,
			},
			wantErr: "multiple pysig directives on Scale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fset, files := parseFiles(t, tt.files)
			result, err := Find(fset, files)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Defs) != len(tt.wantDefs) {
				t.Fatalf("got %d defs, want %d", len(result.Defs), len(tt.wantDefs))
			}

			// Order may vary across files
			gotDefs := make(map[string]string)
			for _, d := range result.Defs {
				gotDefs[d.FuncName] = d.Name
			}
			for _, want := range tt.wantDefs {
				gotName, ok := gotDefs[want.funcName]
				if !ok {
					t.Errorf("missing def for func %s", want.funcName)
					continue
				}
				if gotName != want.name {
					t.Errorf("def %s: got name %q, want %q", want.funcName, gotName, want.name)
				}
			}

			if len(result.Skips) != len(tt.wantSkips) {
				t.Errorf("got %d skips, want %d", len(result.Skips), len(tt.wantSkips))
			}
			for _, s := range tt.wantSkips {
				if !result.Skips[s] {
					t.Errorf("missing skip for %s", s)
				}
			}
		})
	}
}

func TestDirective_PyName(t *testing.T) {
	if got := (Directive{FuncName: "Scale"}).PyName(); got != "Scale" {
		t.Errorf("PyName() = %q, want Scale", got)
	}
	if got := (Directive{FuncName: "Scale", Name: "scale"}).PyName(); got != "scale" {
		t.Errorf("PyName() = %q, want scale", got)
	}
}

func TestDirective_Position(t *testing.T) {
	fset, files := parseFiles(t, map[string]string{
		"geom.go": `package geom

//pysig:def
func Scale() {}
`,
	})
	result, err := Find(fset, files)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Defs) != 1 {
		t.Fatalf("got %d defs, want 1", len(result.Defs))
	}
	if pos := result.Defs[0].Pos; pos.Filename != "geom.go" || pos.Line != 4 {
		t.Errorf("Pos = %s, want geom.go:4", pos)
	}
}
