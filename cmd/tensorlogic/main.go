// Package main provides the Tensor Logic CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tensor-logic/tensorlogic/internal/command"
)

// version is injected at build time with -ldflags "-X main.version=...".
var version = "v0.1.0-dev"

func main() {
	args, err := command.ParseArguments(os.Args, version)
	if err != nil {
		if errors.Is(err, command.ErrMissingCommand) || errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	cfg, err := command.LoadConfig(args.ConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error", err.Error())
		os.Exit(2)
	}
	cfg = args.Apply(cfg)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Debugf("Config: %+v", cfg)

	out := os.Stdout
	switch {
	case args.Version != nil:
		command.PrintVersion(out, version)
	case args.List != nil:
		err = command.ListExamples(out, args.List)
	case args.Run != nil:
		err = command.RunExamples(out, cfg, args.Run)
	case args.Einsum != nil:
		err = command.EvaluateEinsum(out, cfg, args.Einsum)
	case args.Export != nil:
		err = command.ExportExamples(out, cfg, args.Export)
	case args.Show != nil:
		err = command.ShowExport(out, args.Show)
	case args.Save != nil:
		err = command.SaveExample(out, cfg, args.Save)
	default:
		// --help and --version print from the parser and select no command.
		return
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error", err.Error())
		os.Exit(3)
	}
}
