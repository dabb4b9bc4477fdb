package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/broady/pysig/pysiggen"
	"github.com/broady/pysig/pysiggen/sink"
)

type GenCmd struct {
	ConfigFlags `embed:""`

	Out      string `arg:"" optional:"" help:"Output directory (default: out_dir from the config, or .)." type:"path"`
	Manifest bool   `help:"Also write signatures.json."`
	Stdout   bool   `help:"Print the generated files instead of writing them."`
}

func (c *GenCmd) Run(ctx context.Context, kctx *kong.Context, logger *zap.Logger) error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}
	if c.Manifest {
		cfg.Manifest = true
	}

	var out sink.OutputSink
	if c.Stdout {
		out = sink.NewWriterSink(kctx.Stdout)
	} else {
		dir := c.Out
		if dir == "" {
			dir = cfg.OutDir
		}
		if dir == "" {
			dir = "."
		}
		out = sink.NewFilesystemSink(dir)
		logger = logger.With(zap.String("dir", dir))
	}

	result, err := pysiggen.FromConfig(cfg).WithLogger(logger).ToSink(ctx, out)
	if err != nil {
		return err
	}
	if !c.Stdout {
		for _, f := range result.Files {
			fmt.Fprintf(kctx.Stdout, "✓ %s (%d bytes)\n", f.Path, f.Size)
		}
	}
	return nil
}
