// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package sigparse

import "strings"

// Argument is one parameter of a method signature.
type Argument struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// String returns the argument as "type name".
func (a Argument) String() string {
	return a.Type + " " + a.Name
}

// Signature is the structured form of a parsed method signature.
type Signature struct {
	// AccessModifier is empty unless the signature carried one
	// (e.g. "private", "public").
	AccessModifier string `json:"access_modifier,omitempty"`

	ReturnType string `json:"return_type"`
	MethodName string `json:"method_name"`

	// Arguments are in source order. Never nil for a parsed signature.
	Arguments []Argument `json:"arguments"`
}

// HasAccessModifier reports whether the signature carried an access modifier.
func (s Signature) HasAccessModifier() bool {
	return s.AccessModifier != ""
}

// String reassembles the signature in canonical form:
//
//	[modifier ]returnType methodName(type1 name1, type2 name2)
//
// Parsing the result yields a Signature equal to s.
func (s Signature) String() string {
	var b strings.Builder
	if s.HasAccessModifier() {
		b.WriteString(s.AccessModifier)
		b.WriteByte(' ')
	}
	b.WriteString(s.ReturnType)
	b.WriteByte(' ')
	b.WriteString(s.MethodName)
	b.WriteByte('(')
	for i, arg := range s.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Equal reports whether two signatures have the same fields and the same
// arguments in the same order. A nil and an empty argument list are equal.
func (s Signature) Equal(other Signature) bool {
	if s.AccessModifier != other.AccessModifier ||
		s.ReturnType != other.ReturnType ||
		s.MethodName != other.MethodName ||
		len(s.Arguments) != len(other.Arguments) {
		return false
	}
	for i := range s.Arguments {
		if s.Arguments[i] != other.Arguments[i] {
			return false
		}
	}
	return true
}
