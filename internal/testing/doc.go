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

// Package testing provides test helpers shared by methodsig packages.
//
// # Quick Start
//
// Build a Java source tree for scan tests:
//
//	func TestScan(t *testing.T) {
//	    root := testing.WriteJavaTree(t, map[string]string{
//	        "src/Api.java": testing.JavaClass("Api", "public void ping()"),
//	    })
//
//	    report, err := pipeline.Scan(ctx, []string{root})
//	    require.NoError(t, err)
//	}
//
// # Fixtures
//
//   - WriteJavaFile: write one file under a directory
//   - WriteJavaTree: write a map of files under a fresh temp directory
//   - JavaClass: render a class with empty-bodied methods
//
// # Assertions
//
//   - RequireMalformed: assert a *sigparse.MalformedSignatureError at a stage
package testing
