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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExcludeGlobs are skipped by every scan unless the configuration
// replaces them.
var DefaultExcludeGlobs = []string{
	".git/**",
	"build/**",
	"target/**",
	"out/**",
	"node_modules/**",
}

// Skip reasons reported in LoadResult.SkipReasons.
const (
	SkipExcluded    = "excluded"
	SkipExcludedDir = "excluded_dir"
	SkipTooLarge    = "too_large"
	SkipNotJava     = "not_java"
	SkipWalkError   = "walk_error"
)

// FileInfo is a Java source file selected for scanning.
type FileInfo struct {
	Path string // As reachable from the working directory
	Size int64
}

// LoadResult lists the files selected from a set of input paths.
type LoadResult struct {
	Files       []FileInfo
	TotalSize   int64
	SkipReasons map[string]int // Reason -> count
}

// Loader expands files and directories into the Java sources to scan.
type Loader struct {
	logger       *slog.Logger
	excludeGlobs []string
	maxFileSize  int64
}

// NewLoader creates a loader. maxFileSize <= 0 disables the size limit.
// A nil logger uses slog.Default().
func NewLoader(excludeGlobs []string, maxFileSize int64, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:       logger,
		excludeGlobs: excludeGlobs,
		maxFileSize:  maxFileSize,
	}
}

// Load resolves each path. Files are taken as given (if they are .java
// files); directories are walked recursively with exclude globs applied to
// paths relative to that directory. A path that does not exist is an error.
// Files reachable through more than one input are returned once.
func (l *Loader) Load(paths []string) (*LoadResult, error) {
	result := &LoadResult{SkipReasons: make(map[string]int)}
	seen := make(map[string]bool)

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			l.add(result, seen, root, filepath.Base(root), info.Size())
			continue
		}

		l.logger.Info("ingestion.load.walk", "root", root)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				l.logger.Warn("ingestion.load.walk_error", "path", path, "err", err)
				result.SkipReasons[SkipWalkError]++
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil || rel == "." {
				return nil
			}

			if d.IsDir() {
				if l.excluded(rel) {
					result.SkipReasons[SkipExcludedDir]++
					return filepath.SkipDir
				}
				return nil
			}

			if l.excluded(rel) {
				result.SkipReasons[SkipExcluded]++
				return nil
			}

			fi, err := d.Info()
			if err != nil {
				result.SkipReasons[SkipWalkError]++
				return nil
			}
			l.add(result, seen, path, rel, fi.Size())
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	l.logger.Info("ingestion.load.complete",
		"files", len(result.Files),
		"total_size", result.TotalSize,
		"skipped", result.SkipReasons,
	)
	return result, nil
}

func (l *Loader) add(result *LoadResult, seen map[string]bool, path, rel string, size int64) {
	if !isJavaFile(rel) {
		result.SkipReasons[SkipNotJava]++
		return
	}
	if l.maxFileSize > 0 && size > l.maxFileSize {
		result.SkipReasons[SkipTooLarge]++
		l.logger.Warn("ingestion.load.skip_large_file",
			"path", path,
			"size", size,
			"limit", l.maxFileSize,
		)
		return
	}

	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if seen[key] {
		return
	}
	seen[key] = true

	result.Files = append(result.Files, FileInfo{Path: path, Size: size})
	result.TotalSize += size
}

// excluded checks a relative path against the exclude globs.
func (l *Loader) excluded(rel string) bool {
	for _, pattern := range l.excludeGlobs {
		if matchesGlob(rel, pattern) {
			return true
		}
	}
	return false
}

func isJavaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".java")
}
