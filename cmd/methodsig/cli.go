// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/methodsig/internal/bootstrap"
	"github.com/kraklabs/methodsig/internal/errors"
	"github.com/kraklabs/methodsig/internal/ui"
)

// cli carries what every command needs: merged settings, the logger and the
// standard streams.
type cli struct {
	globals    GlobalFlags
	config     *bootstrap.Config
	configPath string
	workDir    string
	logger     *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// newCLI resolves the configuration for the working directory, applies its
// output defaults to globals and installs the logger.
func newCLI(globals GlobalFlags, stdin io.Reader, stdout, stderr io.Writer) (*cli, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.NewInternalError(
			"Cannot determine working directory",
			err.Error(),
			"Run methodsig from an existing directory",
			err,
		)
	}

	cfg, path, err := bootstrap.Resolve(globals.ConfigPath, cwd)
	if err != nil {
		return nil, configError(path, err)
	}

	globals.JSON = globals.JSON || cfg.Output.JSON
	globals.NoColor = globals.NoColor || cfg.Output.NoColor
	if globals.JSON {
		globals.Quiet = true
	}
	ui.InitColors(globals.NoColor)
	ui.Output = stdout

	logger := newLogger(stderr, globals)
	slog.SetDefault(logger)
	logger.Debug("config.loaded", "path", path, "workers", cfg.Scan.Workers)

	return &cli{
		globals:    globals,
		config:     cfg,
		configPath: path,
		workDir:    cwd,
		logger:     logger,
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
	}, nil
}

// newLogger returns a text logger on w: warnings by default, info with -v,
// debug with -vv, errors only with -q.
func newLogger(w io.Writer, g GlobalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case g.Verbose >= 2:
		level = slog.LevelDebug
	case g.Verbose == 1:
		level = slog.LevelInfo
	case g.Quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func configError(path string, err error) *errors.UserError {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.NewConfigError(
			"Configuration file not found",
			fmt.Sprintf("%s does not exist", path),
			"Check the --config path or run 'methodsig init'",
			err,
		)
	}
	return errors.NewConfigError(
		"Cannot load configuration",
		err.Error(),
		"Fix the file or regenerate it with: methodsig init --force",
		err,
	)
}

func (c *cli) dispatch(args []string) error {
	command, rest := args[0], args[1:]
	switch command {
	case "parse":
		return c.runParse(rest)
	case "scan":
		return c.runScan(rest)
	case "init":
		return c.runInit(rest)
	case "completion":
		return c.runCompletion(rest)
	case "help":
		fmt.Fprintln(c.stdout, "Run 'methodsig --help' for usage, or 'methodsig <command> --help' for a command.")
		return nil
	default:
		return errors.NewInputError(
			"Unknown command",
			fmt.Sprintf("%q is not a methodsig command", command),
			"Run 'methodsig --help' to list commands",
		)
	}
}

// parseFlags parses a command's flags. It reports false with a nil error
// when --help was given and usage has already been printed.
func (c *cli) parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, errors.NewInputError(
			"Invalid arguments",
			err.Error(),
			"Run 'methodsig <command> --help' for usage",
		)
	}
	return true, nil
}
