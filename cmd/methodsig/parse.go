// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/methodsig/internal/errors"
	"github.com/kraklabs/methodsig/internal/output"
	"github.com/kraklabs/methodsig/internal/ui"
	"github.com/kraklabs/methodsig/pkg/ingestion"
)

// maxStdinLine bounds one stdin line. Longer lines fail the read; lines
// between the signature limit and this bound are reported as rejected.
const maxStdinLine = 1 << 20

// runParse executes the 'parse' CLI command.
//
// Each signature is parsed independently. Text output prints one line per
// signature; --json prints the results as an array (arguments) or as one
// object per line (--stdin).
func (c *cli) runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fromStdin := fs.Bool("stdin", false, "Read signatures from stdin, one per line (blank lines are skipped)")

	fs.Usage = func() {
		fmt.Fprintf(c.stderr, `Usage: methodsig parse [options] [signature...]

Description:
  Parse method signatures of the form

    [access] returnType name(type1 name1, type2 name2, ...)

  and print their canonical form. Malformed signatures are reported with
  the part that failed and exit with code 4.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(c.stderr, `
Examples:
  methodsig parse "public void log(String message, int level)"
  methodsig parse "int size()" "void run(int)"
  grep -h 'public' sigs.txt | methodsig parse --stdin
  methodsig --json parse "private String getName()"
`)
	}

	if ok, err := c.parseFlags(fs, args); !ok {
		return err
	}

	var inputs []ingestion.Input
	if *fromStdin {
		if fs.NArg() > 0 {
			return errors.NewInputError(
				"Invalid arguments",
				"--stdin cannot be combined with signature arguments",
				"Pass signatures either as arguments or on stdin",
			)
		}
		var err error
		if inputs, err = c.readStdin(); err != nil {
			return err
		}
	} else {
		for i, text := range fs.Args() {
			inputs = append(inputs, ingestion.Input{Source: "arg", Line: i + 1, Text: text})
		}
	}
	if len(inputs) == 0 {
		return errors.NewInputError(
			"No signatures given",
			"parse needs at least one signature",
			"Run: methodsig parse \"int add(int a, int b)\" or pipe lines into methodsig parse --stdin",
		)
	}

	pipeline := ingestion.NewPipeline(c.config.PipelineConfig(), c.logger)
	report, err := pipeline.Run(context.Background(), inputs)
	if err != nil {
		return errors.NewInternalError("Parsing interrupted", err.Error(), "", err)
	}

	if err := c.printParseResults(report, *fromStdin); err != nil {
		return err
	}
	return parseFailure(report)
}

func (c *cli) readStdin() ([]ingestion.Input, error) {
	var inputs []ingestion.Input

	scanner := bufio.NewScanner(c.stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStdinLine)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		inputs = append(inputs, ingestion.Input{Source: "stdin", Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInputError(
			"Cannot read signatures from stdin",
			fmt.Sprintf("line %d: %v", line+1, err),
			fmt.Sprintf("Keep each line under %d bytes", maxStdinLine),
		)
	}
	return inputs, nil
}

func (c *cli) printParseResults(report *ingestion.Report, lines bool) error {
	if c.globals.JSON {
		if !lines {
			return output.JSONTo(c.stdout, report.Results)
		}
		for _, res := range report.Results {
			if err := output.JSONCompactTo(c.stdout, res); err != nil {
				return err
			}
		}
		return nil
	}

	// A lone failing argument is explained by the returned error alone.
	if len(report.Results) == 1 && report.Results[0].Status != ingestion.StatusParsed {
		return nil
	}

	for _, res := range report.Results {
		if res.Status == ingestion.StatusParsed {
			if !c.globals.Quiet {
				fmt.Fprintf(c.stdout, "%s %s\n", ui.StatusText(string(res.Status)), ui.SignatureText(*res.Signature))
			}
			continue
		}
		fmt.Fprintf(c.stdout, "%s %s\n", ui.StatusText(string(res.Status)), res.Text)
		fmt.Fprintf(c.stdout, "          %s %s\n", ui.Location(res.Source, res.Line), ui.DimText(res.Error))
	}
	return nil
}

// parseFailure turns a report with failures into the command's error.
func parseFailure(report *ingestion.Report) error {
	if report.OK() {
		return nil
	}

	if len(report.Results) == 1 {
		res := report.Results[0]
		if res.Status == ingestion.StatusMalformed {
			return errors.NewParseError(res.Err)
		}
		return errors.NewInputError(
			"Signature rejected",
			res.Error,
			"Pass a single-line signature within the size limit (METHODSIG_MAX_SIGNATURE_BYTES)",
		)
	}

	failed := report.Malformed + report.Rejected
	return errors.NewInputError(
		fmt.Sprintf("%d of %d signatures did not parse", failed, len(report.Results)),
		fmt.Sprintf("%d malformed, %d rejected", report.Malformed, report.Rejected),
		"Write each signature as '[access] returnType name(type name, ...)'",
	)
}
