// Command driftcorr corrects thermal channel drift between two gamma-ray
// spectra.
//
// Usage:
//
//	driftcorr correct [flags] <reference> <shifted>
//	driftcorr lookup <spectrum> <channel>
//	driftcorr serve [flags]
//	driftcorr version
//
// Spectra are read from .txt (header line, then one count per line) or .csv
// (channels and counts columns) files.
//
// Examples:
//
//	driftcorr correct ref.txt heated.txt -o aligned.csv --chart aligned.png
//	driftcorr correct ref.csv heated.csv --config peaks.json --diagnose
//	driftcorr correct ref.txt heated.txt --channel 122 --channel 300
//	driftcorr lookup heated.txt 101
//	driftcorr serve --addr :8080 --cache-size 256
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-gamma/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})."`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (${enum})."`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Correct CorrectCmd `cmd:"" help:"Align a shifted spectrum onto the reference channel grid."`
	Lookup  LookupCmd  `cmd:"" help:"Print the count of one channel of a spectrum file."`
	Serve   ServeCmd   `cmd:"" help:"Serve the correction HTTP API."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// env is bound into every command's Run method.
type env struct {
	ctx    context.Context
	stdout io.Writer
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("driftcorr"),
		kong.Description("Gamma spectrum drift correction."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}, options...)

	return kong.New(cli, options...)
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, options ...kong.Option) error {
	var cli CLI

	parser, err := newParser(&cli, append(options, kong.Writers(stdout, stderr))...)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := cli.Globals.initLogging(stderr); err != nil {
		return err
	}

	return kctx.Run(&env{ctx: ctx, stdout: stdout})
}

func (g Globals) initLogging(w io.Writer) error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}

	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}

	logging.Init(level, format, w)

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "driftcorr: %v\n", err)
		stop()
		os.Exit(1)
	}
}
