// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/methodsig/internal/errors"
	"github.com/kraklabs/methodsig/internal/output"
	"github.com/kraklabs/methodsig/internal/ui"
	"github.com/kraklabs/methodsig/pkg/ingestion"
	"github.com/kraklabs/methodsig/pkg/sigparse"
)

// scanFlags holds parsed flags for the scan command.
type scanFlags struct {
	workers       int
	exclude       []string
	maxFileSize   int64
	onlyMalformed bool
	metricsAddr   string
}

// runScan executes the 'scan' CLI command: it extracts every method
// declaration from the .java files under the given paths and parses each
// one. Any malformed declaration makes the command fail with ExitInput.
func (c *cli) runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	var f scanFlags
	fs.IntVar(&f.workers, "workers", c.config.Scan.Workers, "Parallel extraction and parse workers")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "Additional glob to skip (repeatable), e.g. '**/generated/**'")
	fs.Int64Var(&f.maxFileSize, "max-file-size", c.config.Scan.MaxFileSize, "Skip .java files larger than this many bytes (0 = no limit)")
	fs.BoolVar(&f.onlyMalformed, "only-malformed", false, "List only malformed declarations")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(c.stderr, `Usage: methodsig scan [options] [path...]

Description:
  Extract method declarations from .java files under each path (default: .)
  and check that each one fits the signature grammar. Declarations using
  generics, varargs or receiver parameters are reported as rejected;
  declarations that do not parse are reported as malformed.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(c.stderr, `
Examples:
  methodsig scan src/main/java
  methodsig scan --only-malformed --exclude '**/generated/**' .
  methodsig --json scan . > report.json
  methodsig scan --metrics-addr :9102 .
`)
	}

	if ok, err := c.parseFlags(fs, args); !ok {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg := c.config.PipelineConfig()
	cfg.Workers = f.workers
	cfg.MaxFileSize = f.maxFileSize
	cfg.ExcludeGlobs = append(cfg.ExcludeGlobs, f.exclude...)
	if cfg.Workers < 0 {
		return errors.NewInputError(
			"Invalid --workers value",
			fmt.Sprintf("--workers must not be negative, got %d", f.workers),
			"Run with --workers 4",
		)
	}

	if f.metricsAddr != "" {
		c.serveMetrics(f.metricsAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			c.logger.Info("shutdown.signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	progress := newScanProgress(NewProgressConfig(c.globals))
	cfg.OnLoad = progress.loaded
	cfg.OnFile = progress.file

	report, err := ingestion.NewPipeline(cfg, c.logger).Scan(ctx, paths)
	progress.finish()
	if err != nil {
		return scanError(err)
	}

	if f.onlyMalformed {
		report.Results = filterResults(report.Results, ingestion.StatusMalformed)
	}

	if c.globals.JSON {
		if err := output.JSONTo(c.stdout, report); err != nil {
			return err
		}
	} else {
		c.printScanReport(report, f.onlyMalformed)
	}

	return scanFailure(report)
}

// scanFailure fails the scan when any declaration is malformed. Rejected
// declarations are reported but do not fail it.
func scanFailure(report *ingestion.Report) error {
	if report.Malformed == 0 {
		return nil
	}
	return errors.NewInputError(
		fmt.Sprintf("%d malformed method declarations", report.Malformed),
		fmt.Sprintf("%d of %d declarations do not fit '[access] returnType name(type name, ...)'",
			report.Malformed, report.Parsed+report.Malformed+report.Rejected),
		"Fix the declarations listed above or skip their files with --exclude",
	)
}

// serveMetrics exposes the default Prometheus registry on addr/metrics for
// the life of the process.
func (c *cli) serveMetrics(addr string) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		c.logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Warn("metrics.http.error", "err", err)
		}
	}()
}

func scanError(err error) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.NewNotFoundError(
			"Path not found",
			err.Error(),
			"Check the path and run 'methodsig scan' again",
		)
	case stderrors.Is(err, fs.ErrPermission):
		return errors.NewPermissionError(
			"Cannot read path",
			err.Error(),
			"Check file permissions or exclude the path with --exclude",
			err,
		)
	case stderrors.Is(err, context.Canceled):
		return errors.NewInternalError("Scan interrupted", "Received a termination signal", "", err)
	default:
		return errors.NewInternalError("Scan failed", err.Error(), "Re-run with -vv and report the log", err)
	}
}

func filterResults(results []ingestion.Result, status ingestion.Status) []ingestion.Result {
	out := make([]ingestion.Result, 0, len(results))
	for _, r := range results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// printScanReport lists failing declarations (parsed ones too with -v) and a
// summary unless -q is set.
func (c *cli) printScanReport(report *ingestion.Report, onlyMalformed bool) {
	for _, res := range report.Results {
		switch {
		case res.Status == ingestion.StatusParsed && c.globals.Verbose == 0:
			continue
		case res.Status == ingestion.StatusRejected && c.globals.Quiet:
			continue
		}
		fmt.Fprintf(c.stdout, "%s %s %s\n",
			ui.Location(res.Source, res.Line), ui.StatusText(string(res.Status)), res.Text)
		if res.Error != "" {
			fmt.Fprintf(c.stdout, "    %s\n", ui.DimText(res.Error))
		}
	}

	if c.globals.Quiet {
		return
	}

	if len(report.Results) > 0 && (report.Malformed > 0 || report.Rejected > 0 || c.globals.Verbose > 0) {
		fmt.Fprintln(c.stdout)
	}
	if report.Files == 0 {
		ui.Info("No .java files found")
	}
	ui.Header("Scan Summary")
	fmt.Fprintf(c.stdout, "%s %s\n", ui.Label("Files:       "), ui.CountText(report.Files))
	fmt.Fprintf(c.stdout, "%s %s\n", ui.Label("Declarations:"), ui.CountText(report.Parsed+report.Malformed+report.Rejected))
	fmt.Fprintf(c.stdout, "%s %s\n", ui.Label("Parsed:      "), ui.CountText(report.Parsed))
	fmt.Fprintf(c.stdout, "%s %s\n", ui.Label("Malformed:   "), ui.CountText(report.Malformed))
	if !onlyMalformed {
		fmt.Fprintf(c.stdout, "%s %s\n", ui.Label("Rejected:    "), ui.CountText(report.Rejected))
	}

	if report.Malformed > 0 {
		ui.SubHeader("Malformed by stage:")
		for _, stage := range []sigparse.Stage{sigparse.StageParentheses, sigparse.StagePrefix, sigparse.StageArgument} {
			if n := report.MalformedByStage[stage]; n > 0 {
				fmt.Fprintf(c.stdout, "  %-12s %s\n", string(stage)+":", ui.CountText(n))
			}
		}
	}

	if report.FileErrors > 0 {
		ui.Warningf("%d files could not be read (run with -v for details)", report.FileErrors)
	}
	if len(report.SkipReasons) > 0 {
		reasons := make([]string, 0, len(report.SkipReasons))
		for reason := range report.SkipReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(c.stdout, "%s\n", ui.DimText(fmt.Sprintf("skipped %s: %d", reason, report.SkipReasons[reason])))
		}
	}
	fmt.Fprintf(c.stdout, "%s\n", ui.DimText(fmt.Sprintf("took %s", report.TotalDuration.Round(time.Millisecond))))

	switch {
	case report.Malformed > 0:
		ui.Errorf("%d malformed method declarations", report.Malformed)
	case report.Rejected > 0:
		ui.Successf("No malformed declarations (%d rejected)", report.Rejected)
	default:
		ui.Success("All declarations parsed")
	}
}
