// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"testing"
)

func TestMatchesGlob(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		// Exact match
		{"exact match", "Foo.java", "Foo.java", true},
		{"exact no match", "Foo.java", "Bar.java", false},

		// * wildcard (single segment)
		{"star prefix", "Foo.java", "*.java", true},
		{"star suffix", "Test_foo", "Test_*", true},
		{"star middle", "test_foo_bar", "test_*_bar", true},
		{"star no match ext", "Foo.kt", "*.java", false},
		{"star does not cross segments", "a/b/Foo.java", "a/*.java", false},

		// ** wildcard (any depth)
		{"doublestar prefix any depth", "a/b/c/Foo.java", "**/*.java", true},
		{"doublestar prefix root", "Foo.java", "**/*.java", true},
		{"doublestar suffix", "target/classes/Foo.class", "target/**", true},
		{"doublestar middle", "src/main/java/Foo.java", "src/**/Foo.java", true},
		{"doublestar middle zero segments", "src/Foo.java", "src/**/Foo.java", true},

		// ? wildcard
		{"question single", "Foo.java", "Fo?.java", true},
		{"question no match", "Fooo.java", "Fo?.java", false},

		// Character classes
		{"char class match", "Foo.java", "[EF]oo.java", true},
		{"char class no match", "Foo.java", "[AB]oo.java", false},
		{"char range match", "File1.java", "File[0-9].java", true},
		{"char range no match", "FileA.java", "File[0-9].java", false},
		{"negated bang match", "Foo.java", "[!AB]oo.java", true},
		{"negated bang no match", "Aoo.java", "[!AB]oo.java", false},
		{"negated caret match", "Foo.java", "[^AB]oo.java", true},

		// Floating vs anchored
		{"floating literal nested", "a/b/build", "build", true},
		{"floating file nested", "src/gen/Foo.java", "gen/Foo.java", true},
		{"anchored root only", "build", "/build", true},
		{"anchored not nested", "a/build", "/build", false},

		// Directory patterns
		{"dir pattern exact", "target", "target/**", true},
		{"dir pattern nested dir", "module/target", "target/**", true},
		{"dir pattern nested file", "module/target/gen/A.java", "target/**", true},
		{"dir pattern prefix lookalike", "module/targets/A.java", "target/**", false},

		// Edge cases
		{"empty path", "", "**", true},
		{"empty pattern", "Foo.java", "", false},
		{"path with dots", "foo.bar.baz.java", "*.java", true},
		{"malformed class never matches", "Foo.java", "[.java", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesGlob(tt.path, tt.pattern)
			if got != tt.want {
				t.Errorf("matchesGlob(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesGlob_DefaultExcludes(t *testing.T) {
	excluded := []string{
		".git/objects/pack/file",
		".git",
		"build/generated/Foo.java",
		"module/build/Foo.java",
		"target/classes/Foo.java",
		"out/production/Foo.java",
		"node_modules/x/Foo.java",
	}
	included := []string{
		"src/main/java/com/example/Foo.java",
		"builder/Foo.java",
		"git/Foo.java",
		".gitignore",
		"targeting/Foo.java",
	}

	l := NewLoader(DefaultExcludeGlobs, 0, nil)

	for _, path := range excluded {
		if !l.excluded(path) {
			t.Errorf("excluded(%q) = false, want true", path)
		}
	}
	for _, path := range included {
		if l.excluded(path) {
			t.Errorf("excluded(%q) = true, want false", path)
		}
	}
}
