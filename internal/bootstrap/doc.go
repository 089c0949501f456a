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

// Package bootstrap handles methodsig project configuration.
//
// A project is configured by a .methodsig.yaml file at (or above) the
// directory the CLI runs in:
//
//	scan:
//	  exclude: ["**/build/**", "**/target/**", "**/.git/**"]
//	  max_file_size: 1048576
//	  workers: 4
//	limits:
//	  max_signature_bytes: 4096
//	output:
//	  json: false
//	  no_color: false
//
// # Initialization
//
// InitProject writes the defaults:
//
//	info, err := bootstrap.InitProject(cwd, false, logger)
//	if errors.Is(err, bootstrap.ErrConfigExists) {
//	    // rerun with force to overwrite
//	}
//
// # Loading
//
// Resolve picks the file the CLI should use (explicit --config path, then
// the nearest .methodsig.yaml, then DefaultConfig):
//
//	cfg, path, err := bootstrap.Resolve(configFlag, cwd)
//	pipeline := ingestion.NewPipeline(cfg.PipelineConfig(), logger)
//
// Keys missing from the file keep their default values. The environment
// variable METHODSIG_MAX_SIGNATURE_BYTES changes the default signature limit.
package bootstrap
