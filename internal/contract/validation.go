// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultMaxSignatureBytes is the baseline size limit for one signature.
	DefaultMaxSignatureBytes = 4096
)

// MaxSignatureBytes returns the effective signature size limit.
// Controlled via env METHODSIG_MAX_SIGNATURE_BYTES; falls back to
// DefaultMaxSignatureBytes.
func MaxSignatureBytes() int {
	if v := os.Getenv("METHODSIG_MAX_SIGNATURE_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxSignatureBytes
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateSignature checks that text can be handed to the signature parser:
// it must fit within limit bytes (limit <= 0 uses MaxSignatureBytes) and be a
// single line.
func ValidateSignature(text string, limit int) *ValidationResult {
	if limit <= 0 {
		limit = MaxSignatureBytes()
	}
	if len(text) > limit {
		return &ValidationResult{
			OK:      false,
			Message: fmt.Sprintf("signature exceeds %d bytes", limit),
		}
	}
	if strings.ContainsAny(text, "\r\n") {
		return &ValidationResult{
			OK:      false,
			Message: "signature spans multiple lines",
		}
	}
	return &ValidationResult{OK: true}
}
