// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package sigparse

import "github.com/kraklabs/methodsig/pkg/splitter"

var (
	parens = splitter.NewSet("(", ")")
	spaces = splitter.NewSet(" ")
	commas = splitter.NewSet(",")
)

// Parse parses a single-line method signature of the form
//
//	[modifier] returnType name(type1 name1, type2 name2, ...)
//
// Parentheses are optional when there are no arguments. Extra whitespace
// around tokens and commas is ignored.
//
// On a grammar violation Parse returns a zero Signature and a
// *MalformedSignatureError describing the first problem found.
func Parse(signature string) (Signature, error) {
	parts := parens.Split(signature)
	if len(parts) == 0 || len(parts) > 2 {
		return Signature{}, &MalformedSignatureError{
			Signature: signature,
			Stage:     StageParentheses,
			Fragment:  signature,
			Tokens:    len(parts),
			Want:      "1 or 2",
			Index:     -1,
		}
	}

	prefix := spaces.Split(parts[0])
	if len(prefix) < 2 || len(prefix) > 3 {
		return Signature{}, &MalformedSignatureError{
			Signature: signature,
			Stage:     StagePrefix,
			Fragment:  parts[0],
			Tokens:    len(prefix),
			Want:      "2 or 3",
			Index:     -1,
		}
	}

	args := make([]Argument, 0)
	if len(parts) == 2 {
		for i, raw := range commas.Split(parts[1]) {
			pair := spaces.Split(raw)
			if len(pair) != 2 {
				return Signature{}, &MalformedSignatureError{
					Signature: signature,
					Stage:     StageArgument,
					Fragment:  raw,
					Tokens:    len(pair),
					Want:      "2",
					Index:     i,
				}
			}
			args = append(args, Argument{Type: pair[0], Name: pair[1]})
		}
	}

	sig := Signature{Arguments: args}
	if len(prefix) == 2 {
		sig.ReturnType, sig.MethodName = prefix[0], prefix[1]
	} else {
		sig.AccessModifier, sig.ReturnType, sig.MethodName = prefix[0], prefix[1], prefix[2]
	}
	return sig, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures and
// package-level variables.
func MustParse(signature string) Signature {
	sig, err := Parse(signature)
	if err != nil {
		panic(err)
	}
	return sig
}
