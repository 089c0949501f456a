// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package javasrc

// AccessModifiers are the Java modifiers that appear in the rendered
// signature text. Other modifiers are kept on Method.Modifiers only.
var AccessModifiers = []string{"public", "protected", "private"}

// IsAccessModifier reports whether word is public, protected or private.
func IsAccessModifier(word string) bool {
	for _, m := range AccessModifiers {
		if m == word {
			return true
		}
	}
	return false
}
