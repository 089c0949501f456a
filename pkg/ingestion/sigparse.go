// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"errors"

	"github.com/kraklabs/methodsig/internal/contract"
	"github.com/kraklabs/methodsig/pkg/sigparse"
)

// ErrUnsupported marks inputs skipped because the source declaration uses
// syntax outside the signature grammar.
var ErrUnsupported = errors.New("unsupported declaration")

// Status is the outcome of processing one Input.
type Status string

const (
	// StatusParsed: the signature was accepted.
	StatusParsed Status = "parsed"

	// StatusMalformed: the parser rejected the signature.
	StatusMalformed Status = "malformed"

	// StatusRejected: the input never reached the parser (size limit,
	// line breaks, unsupported source syntax).
	StatusRejected Status = "rejected"
)

// Input is one signature to parse together with where it came from.
type Input struct {
	// Source names the origin: a file path, "arg" or "stdin".
	Source string `json:"source,omitempty"`

	// Line is 1-based; 0 when unknown.
	Line int `json:"line,omitempty"`

	Text string `json:"text"`

	// Unsupported carries the extractor's reason for skipping the parse.
	Unsupported string `json:"unsupported,omitempty"`
}

// Result is the outcome for one Input.
type Result struct {
	Input

	Status    Status              `json:"status"`
	Signature *sigparse.Signature `json:"signature,omitempty"`

	// Stage is set for StatusMalformed.
	Stage sigparse.Stage `json:"stage,omitempty"`

	// Error is the failure message for malformed and rejected inputs.
	Error string `json:"error,omitempty"`

	// Err is the underlying error. Malformed results carry a
	// *sigparse.MalformedSignatureError.
	Err error `json:"-"`
}

// parseInput validates and parses a single input. maxBytes <= 0 uses the
// contract default.
func parseInput(in Input, maxBytes int) Result {
	res := Result{Input: in}

	if in.Unsupported != "" {
		res.Status = StatusRejected
		res.Err = errors.Join(ErrUnsupported, errors.New(in.Unsupported))
		res.Error = "unsupported: " + in.Unsupported
		recordRejected()
		return res
	}

	if v := contract.ValidateSignature(in.Text, maxBytes); !v.OK {
		res.Status = StatusRejected
		res.Err = errors.New(v.Message)
		res.Error = v.Message
		recordRejected()
		return res
	}

	sig, err := sigparse.Parse(in.Text)
	if err != nil {
		res.Status = StatusMalformed
		res.Err = err
		res.Error = err.Error()
		if me, ok := sigparse.AsMalformed(err); ok {
			res.Stage = me.Stage
		}
		recordMalformed(res.Stage)
		return res
	}

	res.Status = StatusParsed
	res.Signature = &sig
	recordParsed()
	return res
}
