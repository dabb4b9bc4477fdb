package python

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/pysig/pysiggen/ir"
)

// Header is the first line of every generated stub.
const Header = "# Code generated by pysig. DO NOT EDIT."

// Emitter renders functions as Python signatures and stubs.
type Emitter struct {
	resolver *Resolver
	config   GeneratorConfig
	indent   string
}

// NewEmitter returns an Emitter resolving names with r.
func NewEmitter(r *Resolver, cfg GeneratorConfig) *Emitter {
	size := cfg.IndentSize
	if size <= 0 {
		size = 4
	}
	return &Emitter{
		resolver: r,
		config:   cfg,
		indent:   strings.Repeat(" ", size),
	}
}

// ResolvedFunction is a function whose types have all been named.
type ResolvedFunction struct {
	Name          string
	GoName        string
	Params        []ResolvedParam
	Return        string
	Documentation ir.Documentation
}

// ResolvedParam is a named, typed parameter.
type ResolvedParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Signature renders name(a: int, b: List[str]) -> None.
func (f *ResolvedFunction) Signature() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(Separator)
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type)
	}
	sb.WriteString(") -> ")
	sb.WriteString(f.Return)
	return sb.String()
}

// Resolve names every type of fn. The error identifies the failing
// parameter or the return.
func (e *Emitter) Resolve(fn ir.FunctionDescriptor) (*ResolvedFunction, error) {
	rf := &ResolvedFunction{
		Name:          sanitizeIdentifier(fn.Name),
		GoName:        fn.GoName,
		Params:        make([]ResolvedParam, len(fn.Params)),
		Documentation: fn.Documentation,
	}
	for i, p := range fn.Params {
		name := paramName(i, p.Name)
		typ, err := e.resolver.Resolve(p.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", name)
		}
		rf.Params[i] = ResolvedParam{Name: name, Type: typ}
	}
	ret, err := e.resolver.ResolveReturn(fn.Return)
	if err != nil {
		return nil, errors.Wrap(err, "return")
	}
	rf.Return = ret
	return rf, nil
}

// Signature returns the docstring signature line of fn.
func (e *Emitter) Signature(fn ir.FunctionDescriptor) (string, error) {
	rf, err := e.Resolve(fn)
	if err != nil {
		return "", err
	}
	return rf.Signature(), nil
}

// Docstring returns the signature followed by the documentation body, the
// layout pybind11 uses for function docstrings.
func (e *Emitter) Docstring(fn ir.FunctionDescriptor) (string, error) {
	sig, err := e.Signature(fn)
	if err != nil {
		return "", err
	}
	if fn.Documentation.IsZero() {
		return sig, nil
	}
	return sig + "\n\n" + fn.Documentation.Body, nil
}

// Stub writes a def stub for fn.
func (e *Emitter) Stub(buf *bytes.Buffer, fn ir.FunctionDescriptor) error {
	rf, err := e.Resolve(fn)
	if err != nil {
		return err
	}
	e.emitStub(buf, rf)
	return nil
}

func (e *Emitter) emitStub(buf *bytes.Buffer, rf *ResolvedFunction) {
	buf.WriteString("def ")
	buf.WriteString(rf.Signature())
	buf.WriteByte(':')

	if !e.config.EmitDocstrings || rf.Documentation.IsZero() {
		buf.WriteString(" ...\n")
		return
	}
	buf.WriteByte('\n')
	e.emitDocstring(buf, rf.Documentation, e.indent)
	buf.WriteString(e.indent)
	buf.WriteString("...\n")
}

// EmitModule writes a complete stub module for the resolved functions.
func (e *Emitter) EmitModule(buf *bytes.Buffer, doc ir.Documentation, fns []*ResolvedFunction) {
	buf.WriteString(Header)
	buf.WriteByte('\n')

	if e.config.EmitDocstrings && !doc.IsZero() {
		e.emitDocstring(buf, doc, "")
	}

	modules, typing := imports(fns)
	if len(modules) > 0 || len(typing) > 0 {
		buf.WriteByte('\n')
	}
	for _, m := range modules {
		buf.WriteString("import ")
		buf.WriteString(m)
		buf.WriteByte('\n')
	}
	if len(typing) > 0 {
		buf.WriteString("from typing import ")
		buf.WriteString(strings.Join(typing, Separator))
		buf.WriteByte('\n')
	}

	if e.config.Frontmatter != "" {
		buf.WriteByte('\n')
		buf.WriteString(strings.TrimRight(e.config.Frontmatter, "\n"))
		buf.WriteByte('\n')
	}

	for _, rf := range fns {
		buf.WriteString("\n\n")
		e.emitStub(buf, rf)
	}
}

func (e *Emitter) emitDocstring(buf *bytes.Buffer, doc ir.Documentation, indent string) {
	body := escapeDocstring(doc.Body)
	lines := strings.Split(body, "\n")
	if len(lines) == 1 {
		buf.WriteString(indent)
		buf.WriteString(`"""`)
		buf.WriteString(lines[0])
		buf.WriteString("\"\"\"\n")
		return
	}

	buf.WriteString(indent)
	buf.WriteString(`"""`)
	buf.WriteString(lines[0])
	buf.WriteByte('\n')
	for _, line := range lines[1:] {
		if line != "" {
			buf.WriteString(indent)
			buf.WriteString(line)
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteString("\"\"\"\n")
}

func escapeDocstring(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"""`, `\"\"\"`)
}

var (
	typingRE    = regexp.MustCompile(`\b(Tuple|Dict|List|Set|Callable)\[`)
	qualifiedRE = regexp.MustCompile(`[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)+`)
)

// imports returns the modules referenced by qualified names and the typing
// names used by the resolved signatures, both sorted.
func imports(fns []*ResolvedFunction) (modules, typing []string) {
	seenModules := make(map[string]bool)
	seenTyping := make(map[string]bool)
	scan := func(s string) {
		for _, m := range typingRE.FindAllStringSubmatch(s, -1) {
			seenTyping[m[1]] = true
		}
		for _, q := range qualifiedRE.FindAllString(s, -1) {
			seenModules[q[:strings.LastIndex(q, ".")]] = true
		}
	}
	for _, rf := range fns {
		for _, p := range rf.Params {
			scan(p.Type)
		}
		scan(rf.Return)
	}
	for m := range seenModules {
		modules = append(modules, m)
	}
	for t := range seenTyping {
		typing = append(typing, t)
	}
	slices.Sort(modules)
	slices.Sort(typing)
	return modules, typing
}
