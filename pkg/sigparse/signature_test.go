// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package sigparse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"private void log(String value)", "private void log(String value)"},
		{"Vector3 distort(int x,int y , int z,   float magnitude)", "Vector3 distort(int x, int y, int z, float magnitude)"},
		{"public DateTime getCurrentDateTime()", "public DateTime getCurrentDateTime()"},
		{"int size", "int size()"},
		{"  static   long   id ( )  ", "static long id()"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sig, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sig.String())
		})
	}
}

// TestSignature_RoundTrip checks that the canonical form parses back to an
// equal signature and that reparsing it is idempotent.
func TestSignature_RoundTrip(t *testing.T) {
	inputs := []string{
		"private void log(String value)",
		"Vector3 distort(int x, int y, int z, float magnitude)",
		"public DateTime getCurrentDateTime()",
		"  protected   Map   lookup (String   key ,int   depth)",
		"boolean isEmpty",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			require.NoError(t, err)

			second, err := Parse(first.String())
			require.NoError(t, err)
			assert.True(t, first.Equal(second), "%q != %q", first, second)
			assert.Equal(t, first.String(), second.String())
		})
	}
}

func TestSignature_Equal(t *testing.T) {
	base := Signature{ReturnType: "void", MethodName: "f", Arguments: []Argument{{"int", "x"}}}

	assert.True(t, base.Equal(base))
	assert.True(t, Signature{ReturnType: "void", MethodName: "f"}.Equal(
		Signature{ReturnType: "void", MethodName: "f", Arguments: []Argument{}}))

	other := base
	other.AccessModifier = "public"
	assert.False(t, base.Equal(other))

	other = base
	other.Arguments = []Argument{{"int", "y"}}
	assert.False(t, base.Equal(other))

	other = base
	other.Arguments = append([]Argument{}, base.Arguments...)
	other.Arguments = append(other.Arguments, Argument{"int", "y"})
	assert.False(t, base.Equal(other))
}

func TestSignature_JSON(t *testing.T) {
	sig := MustParse("Vector3 distort(int x)")
	data, err := json.Marshal(sig)
	require.NoError(t, err)
	assert.JSONEq(t, `{"return_type":"Vector3","method_name":"distort","arguments":[{"type":"int","name":"x"}]}`, string(data))

	data, err = json.Marshal(MustParse("public DateTime now()"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_modifier":"public","return_type":"DateTime","method_name":"now","arguments":[]}`, string(data))
}

func TestArgument_String(t *testing.T) {
	assert.Equal(t, "String value", Argument{Type: "String", Name: "value"}.String())
}
