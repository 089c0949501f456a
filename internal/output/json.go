// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output provides utilities for consistent CLI output formatting.
//
// This package handles JSON encoding for machine-readable output, ensuring
// consistent formatting across all methodsig commands. It complements the
// ui package (for human-readable output) and errors package (for error handling).
//
// # Usage
//
// For JSON output in CLI commands:
//
//	report, err := pipeline.Scan(ctx, paths)
//	...
//	if err := output.JSON(report); err != nil {
//	    errors.FatalError(err, true)
//	}
//
// For one JSON object per line (parse --stdin --json):
//
//	for _, res := range report.Results {
//	    _ = output.JSONCompact(res)
//	}
//
// For error output (always goes to stderr):
//
//	output.JSONError(err)
package output

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/kraklabs/methodsig/internal/errors"
)

// JSON writes data as pretty-printed JSON to stdout.
//
// The output is formatted with 2-space indentation for readability.
// This is the standard format for --json output in methodsig commands.
func JSON(data any) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as pretty-printed JSON to the specified writer.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// JSONCompact writes data as compact JSON to stdout, one value per line.
func JSONCompact(data any) error {
	return JSONCompactTo(os.Stdout, data)
}

// JSONCompactTo writes data as compact JSON to the specified writer.
func JSONCompactTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// JSONError writes an error as JSON to stderr.
//
// A *errors.UserError anywhere in the chain is rendered with its cause, fix
// and exit code; any other error becomes {"error": "..."}.
func JSONError(err error) error {
	return JSONErrorTo(os.Stderr, err)
}

// JSONErrorTo writes an error as JSON to the specified writer.
func JSONErrorTo(w io.Writer, err error) error {
	errObj := errors.ErrorJSON{Error: err.Error(), ExitCode: errors.ExitInternal}
	var ue *errors.UserError
	if stderrors.As(err, &ue) {
		errObj = ue.ToJSON()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(errObj); encErr != nil {
		return fmt.Errorf("JSON error encoding failed: %w", encErr)
	}
	return nil
}
