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

package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kraklabs/methodsig/pkg/javasrc"
	"github.com/kraklabs/methodsig/pkg/sigparse"
)

// sequentialThreshold is the batch size below which work runs on the
// calling goroutine.
const sequentialThreshold = 16

// Config controls a Pipeline.
type Config struct {
	// Workers is the number of parallel workers for extraction and parsing.
	Workers int

	// ExcludeGlobs are matched against paths relative to each scanned directory.
	ExcludeGlobs []string

	// MaxFileSize skips larger Java files. 0 disables the limit.
	MaxFileSize int64

	// MaxSignatureBytes rejects longer signatures. 0 uses the contract default.
	MaxSignatureBytes int

	// OnLoad, if set, is called by Scan with the number of files selected,
	// before extraction starts.
	OnLoad func(files int)

	// OnFile, if set, is called once per scanned file (from worker
	// goroutines). Used for progress reporting.
	OnFile func(path string)
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Workers:      4,
		ExcludeGlobs: append([]string(nil), DefaultExcludeGlobs...),
		MaxFileSize:  1 << 20,
	}
}

// Report summarizes a pipeline run.
type Report struct {
	// Results are in input order (for Scan: file order, then source order).
	Results []Result `json:"results"`

	Parsed    int `json:"parsed"`
	Malformed int `json:"malformed"`
	Rejected  int `json:"rejected"`

	// MalformedByStage counts malformed results by failing stage.
	MalformedByStage map[sigparse.Stage]int `json:"malformed_by_stage,omitempty"`

	// Files is the number of Java files scanned (Scan only).
	Files int `json:"files,omitempty"`

	// FileErrors is the number of files that could not be read (Scan only).
	FileErrors int `json:"file_errors,omitempty"`

	// SkipReasons maps loader skip reasons to counts (Scan only).
	SkipReasons map[string]int `json:"skip_reasons,omitempty"`

	ExtractDuration time.Duration `json:"extract_duration_ns,omitempty"`
	ParseDuration   time.Duration `json:"parse_duration_ns"`
	TotalDuration   time.Duration `json:"total_duration_ns"`
}

// OK reports whether every input parsed.
func (r *Report) OK() bool {
	return r.Malformed == 0 && r.Rejected == 0
}

// Pipeline parses batches of signatures and scans Java sources for them.
type Pipeline struct {
	config    Config
	logger    *slog.Logger
	loader    *Loader
	extractor *javasrc.Extractor
}

// NewPipeline creates a pipeline. A nil logger uses slog.Default().
func NewPipeline(config Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Pipeline{
		config:    config,
		logger:    logger,
		loader:    NewLoader(config.ExcludeGlobs, config.MaxFileSize, logger),
		extractor: javasrc.NewExtractor(logger),
	}
}

// Run parses every input. Malformed and rejected inputs are reported in the
// Report, not returned as errors; the only error is ctx cancellation.
func (p *Pipeline) Run(ctx context.Context, inputs []Input) (*Report, error) {
	start := time.Now()

	results := make([]Result, len(inputs))
	err := p.forEach(ctx, len(inputs), func(i int) {
		results[i] = parseInput(inputs[i], p.config.MaxSignatureBytes)
	})
	if err != nil {
		return nil, err
	}

	report := &Report{
		Results:          results,
		MalformedByStage: make(map[sigparse.Stage]int),
	}
	for _, r := range results {
		switch r.Status {
		case StatusParsed:
			report.Parsed++
		case StatusMalformed:
			report.Malformed++
			report.MalformedByStage[r.Stage]++
		case StatusRejected:
			report.Rejected++
		}
	}
	report.ParseDuration = time.Since(start)
	report.TotalDuration = report.ParseDuration
	observeParse(report.ParseDuration)

	p.logger.Debug("ingestion.run.complete",
		"inputs", len(inputs),
		"parsed", report.Parsed,
		"malformed", report.Malformed,
		"rejected", report.Rejected,
	)
	return report, nil
}

// Scan loads the Java files under paths, extracts their method declarations
// and parses each rendered signature.
func (p *Pipeline) Scan(ctx context.Context, paths []string) (*Report, error) {
	start := time.Now()
	p.logger.Info("ingestion.scan.start", "paths", paths, "workers", p.config.Workers)

	loaded, err := p.loader.Load(paths)
	if err != nil {
		return nil, err
	}
	recordSkipped(loaded.SkipReasons)
	if p.config.OnLoad != nil {
		p.config.OnLoad(len(loaded.Files))
	}

	extractStart := time.Now()
	perFile := make([][]javasrc.Method, len(loaded.Files))
	var fileErrors int32

	err = p.forEach(ctx, len(loaded.Files), func(i int) {
		f := loaded.Files[i]
		methods, err := p.extractor.ExtractFile(ctx, f.Path)
		if err != nil {
			atomic.AddInt32(&fileErrors, 1)
			recordFileError()
			p.logger.Warn("ingestion.scan.extract.error", "path", f.Path, "err", err)
		} else {
			perFile[i] = methods
			recordFileScanned(len(methods))
		}
		if p.config.OnFile != nil {
			p.config.OnFile(f.Path)
		}
	})
	if err != nil {
		return nil, err
	}
	extractDuration := time.Since(extractStart)
	observeExtract(extractDuration)

	var inputs []Input
	for _, methods := range perFile {
		for _, m := range methods {
			inputs = append(inputs, Input{
				Source:      m.File,
				Line:        m.Line,
				Text:        m.Text,
				Unsupported: m.Unsupported,
			})
		}
	}

	report, err := p.Run(ctx, inputs)
	if err != nil {
		return nil, err
	}
	report.Files = len(loaded.Files) - int(fileErrors)
	report.FileErrors = int(fileErrors)
	report.SkipReasons = loaded.SkipReasons
	report.ExtractDuration = extractDuration
	report.TotalDuration = time.Since(start)
	observeTotal(report.TotalDuration)

	p.logger.Info("ingestion.scan.complete",
		"files", report.Files,
		"file_errors", report.FileErrors,
		"methods", len(inputs),
		"parsed", report.Parsed,
		"malformed", report.Malformed,
		"rejected", report.Rejected,
		"total_duration_ms", report.TotalDuration.Milliseconds(),
	)
	return report, nil
}

// forEach calls fn for 0..n-1 on a worker pool, or sequentially for small n
// or a single worker. It stops handing out work once ctx is done and then
// returns ctx.Err().
func (p *Pipeline) forEach(ctx context.Context, n int, fn func(i int)) error {
	if n < sequentialThreshold || p.config.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < p.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return ctx.Err()
}
