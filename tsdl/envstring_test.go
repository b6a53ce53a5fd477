// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package tsdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeEnvString(t *testing.T) {
	assert.Equal(t, `line one\nline two`, EscapeEnvString("line one\nline two"))
	assert.Equal(t, `back\\slash`, EscapeEnvString(`back\slash`))
	assert.Equal(t, `say \"hi\"`, EscapeEnvString(`say "hi"`))
	assert.Equal(t, "plain", EscapeEnvString("plain"))
}
