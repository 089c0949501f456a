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

package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/kraklabs/methodsig/pkg/sigparse"
)

// WriteJavaFile writes content to dir/rel, creating parent directories, and
// returns the full path.
//
// Example:
//
//	path := testing.WriteJavaFile(t, t.TempDir(), "com/example/A.java", "class A {}")
func WriteJavaFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", rel, err)
	}
	return path
}

// WriteJavaTree creates a temporary directory holding files (relative path ->
// content) and returns its root. The directory is removed when the test ends.
func WriteJavaTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		WriteJavaFile(t, root, rel, content)
	}
	return root
}

// JavaClass renders a class named name holding one empty-bodied method per
// signature. Signatures are written verbatim, so malformed ones produce
// malformed Java.
//
// Example:
//
//	src := testing.JavaClass("Api", "public void ping()", "int size()")
func JavaClass(name string, signatures ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "public class %s {\n", name)
	for _, sig := range signatures {
		fmt.Fprintf(&b, "    %s {\n    }\n\n", sig)
	}
	b.WriteString("}\n")
	return b.String()
}

// RequireMalformed fails the test unless err is a malformed-signature error
// raised at the given stage.
func RequireMalformed(t *testing.T, err error, stage sigparse.Stage) *sigparse.MalformedSignatureError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected malformed signature error at stage %q, got nil", stage)
	}
	me, ok := sigparse.AsMalformed(err)
	if !ok {
		t.Fatalf("expected *sigparse.MalformedSignatureError, got %T: %v", err, err)
	}
	if me.Stage != stage {
		t.Fatalf("expected stage %q, got %q (%v)", stage, me.Stage, err)
	}
	return me
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
