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

// Package ingestion runs the signature parser over batches of inputs and
// over Java source trees.
//
// # Pipeline Overview
//
// Scan processes code in four stages:
//
//  1. Discovery: expand input paths into .java files, honouring exclude globs
//     and a size limit (Loader)
//  2. Extraction: render every method declaration as a one-line signature
//     using Tree-sitter (javasrc.Extractor)
//  3. Validation: reject inputs over the size limit, spanning lines, or using
//     unsupported syntax (internal/contract)
//  4. Parsing: run sigparse.Parse and classify each result
//
// Run performs stages 3 and 4 for inputs that did not come from files.
//
// # Quick Start
//
//	pipeline := ingestion.NewPipeline(ingestion.DefaultConfig(), logger)
//
//	report, err := pipeline.Scan(ctx, []string{"src/main/java"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d parsed, %d malformed, %d rejected\n",
//	    report.Parsed, report.Malformed, report.Rejected)
//
// # Results
//
// Each Result carries a Status:
//   - StatusParsed: Signature holds the parsed value
//   - StatusMalformed: Stage names the failing grammar step and Err is a
//     *sigparse.MalformedSignatureError
//   - StatusRejected: the input never reached the parser
//
// Results keep input order regardless of the number of workers.
//
// # Metrics
//
// The pipeline updates Prometheus counters and histograms registered on the
// default registry (methodsig_signatures_parsed_total,
// methodsig_signatures_malformed_total{stage}, methodsig_scan_seconds, ...).
// Expose them with promhttp.Handler().
package ingestion
