// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package tsdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeIdentifier(t *testing.T) {
	got, err := EscapeIdentifier("my field!")
	require.NoError(t, err)
	assert.Equal(t, "_my_field_", got)

	got, err = EscapeIdentifier("uuid")
	require.NoError(t, err)
	assert.Equal(t, "uuid", got)

	_, err = EscapeIdentifier("")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestEscapeIdentifierReservedWhitelist(t *testing.T) {
	for name := range reservedIdentifiers {
		got, err := EscapeIdentifier(name)
		require.NoError(t, err)
		assert.Equal(t, name, got, "reserved identifier %q must pass through unescaped", name)
	}
}

func TestIdentifierCacheMemoizes(t *testing.T) {
	cache := newIdentifierCache()

	first, err := cache.escape("weird name")
	require.NoError(t, err)
	assert.Equal(t, "_weird_name", first)

	second, err := cache.escape("weird name")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
