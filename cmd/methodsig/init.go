// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/methodsig/internal/bootstrap"
	"github.com/kraklabs/methodsig/internal/errors"
	"github.com/kraklabs/methodsig/internal/output"
	"github.com/kraklabs/methodsig/internal/ui"
)

// runInit executes the 'init' CLI command, creating .methodsig.yaml in the
// working directory.
//
// Examples:
//
//	methodsig init            Create .methodsig.yaml with defaults
//	methodsig init --force    Overwrite an existing file
func (c *cli) runInit(args []string) error {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	force := flags.Bool("force", false, "Overwrite existing configuration")

	flags.Usage = func() {
		fmt.Fprintf(c.stderr, `Usage: methodsig init [options]

Creates .methodsig.yaml in the current directory with default settings.

Options:
`)
		flags.PrintDefaults()
	}

	if ok, err := c.parseFlags(flags, args); !ok {
		return err
	}

	info, err := bootstrap.InitProject(c.workDir, *force, c.logger)
	switch {
	case stderrors.Is(err, bootstrap.ErrConfigExists):
		return errors.NewConfigError(
			"Configuration already exists",
			fmt.Sprintf("%s is already present", bootstrap.ConfigFileName),
			"Use --force to overwrite it",
			err,
		)
	case stderrors.Is(err, fs.ErrPermission):
		return errors.NewPermissionError(
			"Cannot write configuration",
			err.Error(),
			"Run from a directory you can write to",
			err,
		)
	case err != nil:
		return errors.NewInternalError("Cannot write configuration", err.Error(), "", err)
	}

	if c.globals.JSON {
		return output.JSONTo(c.stdout, map[string]any{
			"config_path": info.ConfigPath,
			"overwritten": info.Overwritten,
		})
	}

	if info.Overwritten {
		ui.Infof("Replaced existing %s", bootstrap.ConfigFileName)
	}
	ui.Successf("Created %s", info.ConfigPath)
	if c.globals.Quiet {
		return nil
	}
	fmt.Fprintln(c.stdout)
	fmt.Fprintln(c.stdout, "Next steps:")
	fmt.Fprintf(c.stdout, "  1. Review %s (scan.exclude, limits.max_signature_bytes)\n", bootstrap.ConfigFileName)
	fmt.Fprintln(c.stdout, "  2. Check your sources:  methodsig scan .")
	return nil
}
