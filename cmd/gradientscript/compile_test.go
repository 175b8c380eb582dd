// SPDX-License-Identifier: Apache-2.0
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/gradientscript/internal/emit"
)

func TestParseDialectRecognizesAllFour(t *testing.T) {
	cases := map[string]emit.Dialect{
		"typescript": emit.TypeScript,
		"JavaScript": emit.JavaScript,
		"python":     emit.Python,
		"CSharp":     emit.CSharp,
	}
	for input, want := range cases {
		got, err := parseDialect(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseDialectRejectsUnknown(t *testing.T) {
	_, err := parseDialect("rust")
	assert.Error(t, err)
}

func TestParseFloatTypeAcceptsFloatAndDouble(t *testing.T) {
	got, err := parseFloatType("FLOAT")
	require.NoError(t, err)
	assert.Equal(t, "float", got)

	got, err = parseFloatType("double")
	require.NoError(t, err)
	assert.Equal(t, "double", got)
}

func TestParseFloatTypeRejectsUnknown(t *testing.T) {
	_, err := parseFloatType("decimal")
	assert.Error(t, err)
}
