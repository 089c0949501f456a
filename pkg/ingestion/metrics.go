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
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kraklabs/methodsig/pkg/sigparse"
)

// metricsIngestion holds Prometheus metrics for the ingestion subsystem.
type metricsIngestion struct {
	once sync.Once

	// Signatures
	sigParsed    prometheus.Counter
	sigMalformed *prometheus.CounterVec
	sigRejected  prometheus.Counter

	// Files
	filesScanned     prometheus.Counter
	filesSkipped     *prometheus.CounterVec
	fileErrors       prometheus.Counter
	methodsExtracted prometheus.Counter

	// Durations
	extractDuration prometheus.Histogram
	parseDuration   prometheus.Histogram
	totalDuration   prometheus.Histogram
}

var ingMetrics metricsIngestion

func (m *metricsIngestion) init() {
	m.once.Do(func() {
		m.sigParsed = prometheus.NewCounter(prometheus.CounterOpts{Name: "methodsig_signatures_parsed_total", Help: "Signatures parsed successfully"})
		m.sigMalformed = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "methodsig_signatures_malformed_total", Help: "Signatures rejected by the grammar, by failing stage"}, []string{"stage"})
		m.sigRejected = prometheus.NewCounter(prometheus.CounterOpts{Name: "methodsig_signatures_rejected_total", Help: "Signatures rejected before parsing (limits, unsupported syntax)"})

		m.filesScanned = prometheus.NewCounter(prometheus.CounterOpts{Name: "methodsig_files_scanned_total", Help: "Java files scanned"})
		m.filesSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "methodsig_files_skipped_total", Help: "Files skipped by the loader, by reason"}, []string{"reason"})
		m.fileErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "methodsig_file_errors_total", Help: "Files that could not be read or parsed"})
		m.methodsExtracted = prometheus.NewCounter(prometheus.CounterOpts{Name: "methodsig_methods_extracted_total", Help: "Method declarations extracted from Java sources"})

		buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.extractDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "methodsig_extract_seconds", Help: "Java extraction duration", Buckets: buckets})
		m.parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "methodsig_parse_seconds", Help: "Signature parsing duration per batch", Buckets: buckets})
		m.totalDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "methodsig_scan_seconds", Help: "Total scan duration", Buckets: buckets})

		prometheus.MustRegister(
			m.sigParsed, m.sigMalformed, m.sigRejected,
			m.filesScanned, m.filesSkipped, m.fileErrors, m.methodsExtracted,
			m.extractDuration, m.parseDuration, m.totalDuration,
		)
	})
}

// record helpers - used by the pipeline for metrics tracking
func recordParsed() { ingMetrics.init(); ingMetrics.sigParsed.Inc() }
func recordMalformed(stage sigparse.Stage) {
	ingMetrics.init()
	ingMetrics.sigMalformed.WithLabelValues(string(stage)).Inc()
}
func recordRejected() { ingMetrics.init(); ingMetrics.sigRejected.Inc() }

func recordFileScanned(methods int) {
	ingMetrics.init()
	ingMetrics.filesScanned.Inc()
	ingMetrics.methodsExtracted.Add(float64(methods))
}
func recordFileError() { ingMetrics.init(); ingMetrics.fileErrors.Inc() }
func recordSkipped(reasons map[string]int) {
	ingMetrics.init()
	for reason, n := range reasons {
		ingMetrics.filesSkipped.WithLabelValues(reason).Add(float64(n))
	}
}

func observeExtract(d time.Duration) { ingMetrics.init(); ingMetrics.extractDuration.Observe(d.Seconds()) }
func observeParse(d time.Duration)   { ingMetrics.init(); ingMetrics.parseDuration.Observe(d.Seconds()) }
func observeTotal(d time.Duration)   { ingMetrics.init(); ingMetrics.totalDuration.Observe(d.Seconds()) }
