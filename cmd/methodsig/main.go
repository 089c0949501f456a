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

// Command methodsig parses Java-style method signatures and checks the
// method declarations of Java source trees against the one-line grammar
//
//	[access] returnType name(type1 name1, type2 name2, ...)
//
// Usage:
//
//	methodsig parse "public void log(String message, int level)"
//	methodsig parse --stdin < signatures.txt
//	methodsig scan src/main/java
//	methodsig init
//	methodsig completion bash
//
// Commands:
//   - parse: Parse signatures given as arguments or on stdin
//   - scan: Extract method declarations from .java files and parse them
//   - init: Create .methodsig.yaml with default settings
//   - completion: Generate shell completion scripts
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/methodsig/internal/errors"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GlobalFlags holds flags accepted before the command name.
type GlobalFlags struct {
	ConfigPath string
	JSON       bool
	Quiet      bool
	NoColor    bool
	Verbose    int
}

func main() {
	globals, args := parseGlobals(os.Args[1:])

	c, err := newCLI(globals, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if err := c.dispatch(args); err != nil {
		errors.FatalError(err, c.globals.JSON)
	}
}

func parseGlobals(args []string) (GlobalFlags, []string) {
	fs := flag.NewFlagSet("methodsig", flag.ExitOnError)
	fs.SetInterspersed(false)

	var g GlobalFlags
	fs.StringVar(&g.ConfigPath, "config", "", "Path to .methodsig.yaml (default: nearest one above the working directory)")
	fs.BoolVar(&g.JSON, "json", false, "Write machine-readable JSON to stdout")
	fs.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "Only print failures")
	fs.CountVarP(&g.Verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	showVersion := fs.Bool("version", false, "Show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `methodsig - Java method signature parser

Parses one-line method signatures of the form

  [access] returnType name(type1 name1, type2 name2, ...)

and checks the method declarations of Java source trees against it.

Usage:
  methodsig [global options] <command> [options]

Commands:
  parse         Parse signatures from arguments or stdin
  scan          Check method declarations in .java files
  init          Create .methodsig.yaml configuration
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  methodsig parse "public void log(String message, int level)"
  methodsig --json parse "int size()"
  methodsig scan src/main/java
  methodsig scan --only-malformed --exclude '**/generated/**' .

Exit Codes:
  0   Everything parsed
  1   Configuration error
  4   Malformed signatures or invalid arguments
  6   Path not found
  10  Internal error

Environment Variables:
  METHODSIG_MAX_SIGNATURE_BYTES  Longest signature accepted (default: 4096)
  NO_COLOR                       Disable colored output

For detailed command help: methodsig <command> --help
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitInput)
	}

	if *showVersion {
		fmt.Printf("methodsig version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(errors.ExitInput)
	}

	return g, fs.Args()
}
