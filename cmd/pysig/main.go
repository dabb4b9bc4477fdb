package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/broady/pysig"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate .pyi stubs for documented Go functions."`
	Check   CheckCmd   `cmd:"" help:"Resolve every signature without writing files."`
	Name    NameCmd    `cmd:"" help:"Print the display name of a Go type expression."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(kctx *kong.Context) error {
	fmt.Fprintln(kctx.Stdout, Version())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args and executes the selected command, returning the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pysig"),
		kong.Description("Generate Python type signatures for Go functions."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		fmt.Fprintf(stderr, "pysig: %v\n", err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "pysig: %v\n", err)
		return 2
	}

	logger := newLogger(cli.Verbose, stderr)
	defer func() { _ = logger.Sync() }()

	if err := kctx.Run(logger); err != nil {
		report(stderr, err)
		return 1
	}
	return 0
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

// report prints err with its code and any hints.
func report(w io.Writer, err error) {
	fmt.Fprintf(w, "pysig: %v\n", err)
	if code := pysig.CodeOf(err); code != pysig.CodeInternal {
		fmt.Fprintf(w, "code: %s\n", code)
	}
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}
