// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package tsdl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lttng.org/relayd-core/trace"
)

func renderField(t *testing.T, name string, ft trace.FieldType, defaultClock string) string {
	t.Helper()
	var sb strings.Builder
	fv := newFieldVisitor(&sb, trace.DefaultABI(), defaultClock, newIdentifierCache())
	fv.emitField(name, ft)
	return strings.TrimRight(sb.String(), "\n")
}

func TestIntegerFieldTimestampRole(t *testing.T) {
	i, err := trace.NewInteger(64, 8, false, trace.BaseHex, trace.LittleEndian,
		trace.RoleDefaultClockTimestamp)
	assert.NoError(t, err)

	got := renderField(t, "ts", i, "monotonic")
	assert.Equal(t, "integer { size = 64; align = 8; base = 16; map = clock.monotonic.value; } _ts;", got)
}

func TestDynamicStringField(t *testing.T) {
	s := &trace.DynamicString{
		LengthLocation: trace.FieldLocation{"length"},
		Encoding:       trace.EncodingUTF8,
	}

	got := renderField(t, "payload", s, "")
	assert.Equal(t, "integer { size = 8; align = 8; base = 10; encoding = UTF8; } _payload[_length];", got)
}

func TestSignedEnumField(t *testing.T) {
	underlying, err := trace.NewInteger(8, 8, true, trace.BaseDecimal, trace.LittleEndian)
	assert.NoError(t, err)

	e, err := trace.NewSignedEnum(*underlying,
		trace.EnumMapping{Name: "A", Begin: 0, End: 0},
		trace.EnumMapping{Name: "B", Begin: 1, End: 3},
	)
	assert.NoError(t, err)

	got := renderField(t, "state", e, "")
	assert.Equal(t, `enum : integer { size = 8; align = 8; signed = true; } { "A" = 0, "B" = 1 ... 3 } _state;`, got)
}
