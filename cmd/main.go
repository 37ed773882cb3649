package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ian-shakespeare/tapevm/internal/config"
	"github.com/ian-shakespeare/tapevm/internal/interpret"
	"github.com/ian-shakespeare/tapevm/internal/logs"
)

const defaultSource = "main.bf"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("tapevm", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: tapevm [flags] [source file, default %s]\n", defaultSource)
		flags.PrintDefaults()
	}
	configPath := flags.String("config", "", "YAML configuration file")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn or error")
	dumpTokens := flags.Bool("tokens", false, "print the token stream instead of running")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	levelValue, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	level := new(slog.LevelVar)
	level.Set(levelValue)

	logger, closer, err := logs.New(stderr, cfg.Log, level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closer.Close()

	path := defaultSource
	if flags.NArg() > 0 {
		path = flags.Arg(0)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read source", "path", path, "error", err)
		return 1
	}

	if *dumpTokens {
		tokens, err := interpret.Scan(bytes.NewReader(source))
		if err != nil {
			logger.Error("scan failed", errorAttrs(path, err)...)
			return 1
		}
		for _, token := range tokens {
			fmt.Fprintln(stdout, token)
		}
		return 0
	}

	logger.Debug("run", "path", path, "tape_size", cfg.TapeSize)
	err = interpret.Run(bytes.NewReader(source), interpret.Options{
		TapeSize: cfg.TapeSize,
		Stdout:   stdout,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("run failed", errorAttrs(path, err)...)
		return 1
	}
	return 0
}

func errorAttrs(path string, err error) []any {
	attrs := []any{"path", path}

	var scanErr *interpret.ScanError
	var runtimeErr *interpret.RuntimeError
	switch {
	case errors.As(err, &scanErr):
		attrs = append(attrs, "line", scanErr.Line, "column", scanErr.Column)
	case errors.As(err, &runtimeErr):
		attrs = append(attrs, "pc", runtimeErr.PC)
	}

	return append(attrs, "error", err)
}
