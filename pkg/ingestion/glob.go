// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"path"
	"path/filepath"
	"strings"
)

// matchesGlob reports whether a slash-separated relative path matches an
// exclude pattern. Supported syntax, per path segment:
//   - * : any run of non-separator characters
//   - ? : one non-separator character
//   - [abc], [a-z], [!abc], [^abc] : character classes
//   - ** : any number of whole segments (including none)
//
// A pattern without a leading "/" floats: it may match starting at any
// directory level, so "build" excludes "a/b/build" and "*.java" excludes
// "src/Foo.java". A leading "/" anchors the pattern at the scan root.
func matchesGlob(relPath, pattern string) bool {
	pattern = filepath.ToSlash(pattern)
	relPath = strings.Trim(filepath.ToSlash(relPath), "/")

	anchored := strings.HasPrefix(pattern, "/")
	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return false
	}

	segs := strings.Split(pattern, "/")
	if !anchored && segs[0] != "**" {
		segs = append([]string{"**"}, segs...)
	}
	return matchSegments(strings.Split(relPath, "/"), segs)
}

func matchSegments(parts, segs []string) bool {
	for len(segs) > 0 {
		if segs[0] == "**" {
			rest := segs[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(parts[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}
		ok, err := path.Match(bangToCaret(segs[0]), parts[0])
		if err != nil || !ok {
			return false
		}
		parts, segs = parts[1:], segs[1:]
	}
	return len(parts) == 0
}

// bangToCaret rewrites shell-style negated classes "[!...]" into the
// "[^...]" form path.Match understands.
func bangToCaret(seg string) string {
	if !strings.Contains(seg, "[!") {
		return seg
	}
	return strings.ReplaceAll(seg, "[!", "[^")
}
