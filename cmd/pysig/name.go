package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/pysig/pysiggen/provider"
	"github.com/broady/pysig/pysiggen/python"
)

type NameCmd struct {
	Expr string `arg:"" help:"Go type expression, e.g. 'pysig.Dict[string, pysig.List[int]]'."`

	Package     string            `help:"Import path of unqualified named types." short:"p"`
	Import      map[string]string `help:"Package qualifier to import path, e.g. geom=example.com/geom." short:"i"`
	Bind        map[string]string `help:"Additional binding, e.g. example.com/geom.Point=Point." short:"b"`
	NoBuiltins  bool              `help:"Start from an empty binding table."`
	NoValueName string            `help:"Display name of a callable that returns nothing." default:"None"`
}

func (c *NameCmd) Run(kctx *kong.Context) error {
	td, err := provider.ParseTypeExpr(c.Expr, provider.ExprOptions{
		Package: c.Package,
		Imports: c.Import,
	})
	if err != nil {
		return err
	}

	bindings := python.NewBindings()
	if !c.NoBuiltins {
		bindings = python.Builtins()
	}
	extra, err := python.BindingsFromMap(c.Bind)
	if err != nil {
		return err
	}
	bindings.Merge(extra)

	r := &python.Resolver{Bindings: bindings, NoValueName: c.NoValueName}
	name, err := r.Resolve(td)
	if err != nil {
		return err
	}
	fmt.Fprintln(kctx.Stdout, name)
	return nil
}
