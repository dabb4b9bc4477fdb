// Package directive parses pysig directives from Go source files.
//
// Directives are line comments in the form:
//
//	//pysig:def [name]
//	//pysig:skip
//
// The def directive marks a package-level function for documentation. The
// optional name overrides the Python-visible name, which defaults to the Go
// function name.
//
// The skip directive excludes a function when every exported function of a
// package is documented.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const prefix = "//pysig:"

// Directive represents a parsed pysig directive.
type Directive struct {
	Kind     Kind           // def or skip
	Name     string         // Python name for def (empty if unnamed)
	FuncName string         // name of the function
	Pos      token.Position // source location of the function
}

// PyName returns the Python-visible name of a def directive.
func (d Directive) PyName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.FuncName
}

// Kind represents the type of directive.
type Kind string

const (
	KindDef  Kind = "def"
	KindSkip Kind = "skip"
)

// Result contains all directives found in a set of files.
type Result struct {
	// Defs contains all //pysig:def directives in source order.
	Defs []Directive

	// Skips contains the names of functions marked //pysig:skip.
	Skips map[string]bool
}

// Find scans parsed files for pysig directives and matches each to the
// function declaration that follows it.
//
// Returns an error if:
//   - A directive is unknown
//   - A directive is placed on a method
//   - A directive is not immediately followed by a function declaration
//   - A function carries more than one directive
func Find(fset *token.FileSet, files []*ast.File) (*Result, error) {
	result := &Result{Skips: make(map[string]bool)}

	for _, f := range files {
		directives, err := parseFile(fset, f)
		if err != nil {
			return nil, err
		}
		for _, d := range directives {
			switch d.Kind {
			case KindDef:
				result.Defs = append(result.Defs, d)
			case KindSkip:
				result.Skips[d.FuncName] = true
			}
		}
	}

	return result, nil
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	var directives []Directive

	// Comment groups are keyed by their last line so they can be matched
	// to the function declaration that follows.
	type pending struct {
		kind Kind
		name string
		pos  token.Position
	}
	commentToDirective := make(map[int][]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, prefix) {
				continue
			}

			parts := strings.Fields(strings.TrimPrefix(c.Text, prefix))
			if len(parts) == 0 {
				continue
			}

			pos := fset.Position(c.Pos())
			endLine := fset.Position(cg.End()).Line
			switch parts[0] {
			case "def":
				name := ""
				if len(parts) > 1 {
					name = parts[1]
				}
				if len(parts) > 2 {
					return nil, fmt.Errorf("%s: //pysig:def takes at most one name", pos)
				}
				commentToDirective[endLine] = append(commentToDirective[endLine], pending{
					kind: KindDef,
					name: name,
					pos:  pos,
				})
			case "skip":
				commentToDirective[endLine] = append(commentToDirective[endLine], pending{
					kind: KindSkip,
					pos:  pos,
				})
			default:
				return nil, fmt.Errorf("%s: unknown directive %s%s", pos, prefix, parts[0])
			}
		}
	}

	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}

		endLine := fset.Position(fn.Doc.End()).Line
		ps, ok := commentToDirective[endLine]
		if !ok {
			continue
		}
		if fn.Recv != nil {
			return nil, fmt.Errorf("%s: %s%s must be on a package-level function, not a method",
				ps[0].pos, prefix, ps[0].kind)
		}
		if len(ps) > 1 {
			return nil, fmt.Errorf("%s: multiple pysig directives on %s", ps[0].pos, fn.Name.Name)
		}

		directives = append(directives, Directive{
			Kind:     ps[0].kind,
			Name:     ps[0].name,
			FuncName: fn.Name.Name,
			Pos:      fset.Position(fn.Pos()),
		})
		delete(commentToDirective, endLine)
	}

	// Check for unmatched directives
	for _, ps := range commentToDirective {
		return nil, fmt.Errorf("%s: %s%s directive must be followed by a function declaration",
			ps[0].pos, prefix, ps[0].kind)
	}

	return directives, nil
}
