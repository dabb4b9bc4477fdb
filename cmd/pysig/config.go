package main

import (
	"os"

	"github.com/broady/pysig/pysiggen"
)

// ConfigFlags are shared by the commands that load a configuration.
type ConfigFlags struct {
	Config      string   `help:"Config file (default: ./pysig.toml if present)." short:"c" type:"path"`
	Package     []string `help:"Go package to document; repeatable." short:"p" sep:"none"`
	Module      string   `help:"Python module name." short:"m"`
	AllExported bool     `help:"Document every exported function, not only //pysig:def ones."`
	Set         []string `help:"Override a config key, e.g. --set no_value_name=NoReturn." short:"s" sep:"none"`
}

// Load reads the config file and applies the flags on top of it.
func (f *ConfigFlags) Load() (*pysiggen.Config, error) {
	path := f.Config
	if path == "" {
		if _, err := os.Stat(pysiggen.DefaultConfigFile); err == nil {
			path = pysiggen.DefaultConfigFile
		}
	}

	cfg := &pysiggen.Config{}
	if path != "" {
		loaded, err := pysiggen.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(f.Package) > 0 {
		cfg.Packages = f.Package
	}
	if f.Module != "" {
		cfg.Module = f.Module
	}
	if f.AllExported {
		cfg.AllExported = true
	}
	if err := cfg.ApplyOverrides(f.Set); err != nil {
		return nil, err
	}
	return cfg, nil
}
