// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package splitter breaks strings into trimmed, non-empty tokens on a set of
// single-character delimiters.
//
// Unlike strings.Split, runs of delimiters and leading or trailing delimiters
// never produce empty entries, and every token is whitespace-trimmed:
//
//	splitter.Split("void log(String value)", "(", ")")
//	// => ["void log", "String value"]
//
//	splitter.Split(" int x ,, int y ", ",")
//	// => ["int x", "int y"]
package splitter

import (
	"strings"
	"unicode/utf8"
)

// Set is a set of delimiter characters.
//
// A Set is read-only after construction and safe for concurrent use.
type Set map[rune]struct{}

// NewSet builds a delimiter set. Every character of every argument becomes a
// delimiter, so NewSet("(", ")") and NewSet("()") are equivalent.
func NewSet(delimiters ...string) Set {
	s := make(Set)
	for _, d := range delimiters {
		for _, r := range d {
			s[r] = struct{}{}
		}
	}
	return s
}

// Contains reports whether r is a delimiter.
func (s Set) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Split scans source left to right and returns the tokens found between
// delimiters, in order. Tokens are trimmed with strings.TrimSpace and
// dropped when blank. An empty set yields the whole trimmed source.
//
// Every token is a substring of source; bytes that are not valid UTF-8
// are kept as they are.
//
// The result is nil when no tokens survive.
func (s Set) Split(source string) []string {
	var tokens []string

	emit := func(tok string) {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}

	start := 0
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRuneInString(source[i:])
		if s.Contains(r) && (r != utf8.RuneError || size > 1) {
			emit(source[start:i])
			start = i + size
		}
		i += size
	}
	emit(source[start:])

	return tokens
}

// Split is shorthand for NewSet(delimiters...).Split(source).
func Split(source string, delimiters ...string) []string {
	return NewSet(delimiters...).Split(source)
}
