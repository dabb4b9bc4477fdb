package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/pysig/pysiggen"
	"github.com/broady/pysig/pysiggen/python"
)

type CheckCmd struct {
	ConfigFlags `embed:""`

	Quiet bool `help:"Only report failures." short:"q"`
}

func (c *CheckCmd) Run(ctx context.Context, kctx *kong.Context, logger *zap.Logger) error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}
	cfg.Manifest = true

	res, err := pysiggen.FromConfig(cfg).WithLogger(logger).Generate(ctx)
	if err != nil {
		return err
	}
	if c.Quiet {
		return nil
	}

	var manifest struct {
		Module    string `json:"module"`
		Functions []struct {
			Signature string `json:"signature"`
		} `json:"functions"`
	}
	if err := json.Unmarshal(res.Content[python.ManifestFile], &manifest); err != nil {
		return errors.Wrap(err, "read manifest")
	}
	for _, fn := range manifest.Functions {
		fmt.Fprintf(kctx.Stdout, "  %s\n", fn.Signature)
	}
	fmt.Fprintf(kctx.Stdout, "✓ %s: %d functions\n", manifest.Module, len(manifest.Functions))
	return nil
}
