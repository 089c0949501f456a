// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package sigparse

import (
	"errors"
	"fmt"
)

// ErrMalformedSignature is matched (via errors.Is) by every grammar
// validation failure returned from Parse.
var ErrMalformedSignature = errors.New("malformed signature")

// Stage identifies which validation step rejected a signature.
type Stage string

const (
	// StageParentheses: splitting on "(" and ")" did not give 1 or 2 parts.
	StageParentheses Stage = "parentheses"

	// StagePrefix: the part before the parentheses did not give
	// "returnType name" or "modifier returnType name".
	StagePrefix Stage = "prefix"

	// StageArgument: an argument did not give exactly "type name".
	StageArgument Stage = "argument"
)

// MalformedSignatureError describes the first grammar violation found in a
// signature.
type MalformedSignatureError struct {
	// Signature is the full input passed to Parse.
	Signature string

	Stage Stage

	// Fragment is the text that failed to split as expected.
	Fragment string

	// Tokens is the number of tokens the fragment split into.
	Tokens int

	// Want describes the accepted token counts, e.g. "2 or 3".
	Want string

	// Index is the zero-based argument position for StageArgument, -1 otherwise.
	Index int
}

// Error implements the error interface.
func (e *MalformedSignatureError) Error() string {
	if e.Stage == StageArgument {
		return fmt.Sprintf("malformed signature %q: argument %d %q has %d tokens, want %s",
			e.Signature, e.Index+1, e.Fragment, e.Tokens, e.Want)
	}
	return fmt.Sprintf("malformed signature %q: %s %q has %d tokens, want %s",
		e.Signature, e.Stage, e.Fragment, e.Tokens, e.Want)
}

// Is makes errors.Is(err, ErrMalformedSignature) true.
func (e *MalformedSignatureError) Is(target error) bool {
	return target == ErrMalformedSignature
}

// AsMalformed unwraps err into a *MalformedSignatureError.
func AsMalformed(err error) (*MalformedSignatureError, bool) {
	var me *MalformedSignatureError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
