// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntegerValidatesAlignment(t *testing.T) {
	_, err := NewInteger(64, 0, false, BaseHex, LittleEndian)
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	_, err = NewInteger(64, 128, false, BaseHex, LittleEndian)
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	i, err := NewInteger(64, 8, false, BaseHex, LittleEndian, RoleDefaultClockTimestamp)
	require.NoError(t, err)
	assert.True(t, i.HasRole(RoleDefaultClockTimestamp))
	assert.False(t, i.HasRole(RoleStreamInstanceID))
}

func TestNewEnumRejectsMismatchedSignedness(t *testing.T) {
	unsigned, err := NewInteger(8, 8, false, BaseDecimal, LittleEndian)
	require.NoError(t, err)

	_, err = NewSignedEnum(*unsigned, EnumMapping{Name: "A", Begin: 0, End: 0})
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	signed, err := NewInteger(8, 8, true, BaseDecimal, LittleEndian)
	require.NoError(t, err)

	e, err := NewSignedEnum(*signed,
		EnumMapping{Name: "A", Begin: 0, End: 0},
		EnumMapping{Name: "B", Begin: 1, End: 3},
	)
	require.NoError(t, err)
	assert.Len(t, e.Mappings, 2)
	assert.Equal(t, "A", e.Mappings[0].Name)
	assert.Equal(t, "B", e.Mappings[1].Name)
}

func TestNewEnumRequiresAtLeastOneMapping(t *testing.T) {
	underlying, err := NewInteger(8, 8, true, BaseDecimal, LittleEndian)
	require.NoError(t, err)

	_, err = NewSignedEnum(*underlying)
	assert.ErrorIs(t, err, ErrInvalidFieldType)
}

func TestNewDynamicArrayRejectsEmptyLocation(t *testing.T) {
	element, err := NewInteger(8, 8, false, BaseDecimal, LittleEndian)
	require.NoError(t, err)

	_, err = NewDynamicArray(element, nil, 8)
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = NewDynamicArray(element, FieldLocation{"_length"}, 8)
	assert.NoError(t, err)
}

func TestFieldLocationLastComponent(t *testing.T) {
	loc := FieldLocation{"event", "context", "_length"}
	assert.Equal(t, "_length", loc.Last())
}

func TestNewVariantRequiresChoices(t *testing.T) {
	_, err := NewVariant(FieldLocation{"tag"}, true, 0)
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	intType, err := NewInteger(32, 32, false, BaseDecimal, LittleEndian)
	require.NoError(t, err)

	v, err := NewVariant(FieldLocation{"tag"}, true, 0, VariantChoice{TagName: "A", Type: intType})
	require.NoError(t, err)
	assert.Len(t, v.Choices, 1)
}

func TestNewStructureRejectsDuplicateFieldNames(t *testing.T) {
	intType, err := NewInteger(32, 32, false, BaseDecimal, LittleEndian)
	require.NoError(t, err)

	_, err = NewStructure(
		Field{Name: "a", Type: intType},
		Field{Name: "a", Type: intType},
	)
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	s, err := NewStructure(
		Field{Name: "a", Type: intType},
		Field{Name: "b", Type: intType},
	)
	require.NoError(t, err)
	assert.Len(t, s.Fields, 2)
}

// fieldTypeRecorder implements FieldTypeVisitor by recording which method fired.
type fieldTypeRecorder struct {
	visited string
}

func (r *fieldTypeRecorder) VisitInteger(*Integer)                             { r.visited = "integer" }
func (r *fieldTypeRecorder) VisitFloat(*Float)                                 { r.visited = "float" }
func (r *fieldTypeRecorder) VisitSignedEnum(*SignedEnum)                       { r.visited = "signed_enum" }
func (r *fieldTypeRecorder) VisitUnsignedEnum(*UnsignedEnum)                   { r.visited = "unsigned_enum" }
func (r *fieldTypeRecorder) VisitStaticArray(*StaticArray)                     { r.visited = "static_array" }
func (r *fieldTypeRecorder) VisitDynamicArray(*DynamicArray)                   { r.visited = "dynamic_array" }
func (r *fieldTypeRecorder) VisitStaticBlob(*StaticBlob)                       { r.visited = "static_blob" }
func (r *fieldTypeRecorder) VisitDynamicBlob(*DynamicBlob)                     { r.visited = "dynamic_blob" }
func (r *fieldTypeRecorder) VisitNullTerminatedString(*NullTerminatedString)   { r.visited = "cstring" }
func (r *fieldTypeRecorder) VisitStaticString(*StaticString)                   { r.visited = "static_string" }
func (r *fieldTypeRecorder) VisitDynamicString(*DynamicString)                 { r.visited = "dynamic_string" }
func (r *fieldTypeRecorder) VisitStructure(*Structure)                         { r.visited = "structure" }
func (r *fieldTypeRecorder) VisitVariant(*Variant)                             { r.visited = "variant" }

func TestAcceptDispatchesToMatchingVisitorMethod(t *testing.T) {
	intType, err := NewInteger(32, 32, false, BaseDecimal, LittleEndian)
	require.NoError(t, err)

	r := &fieldTypeRecorder{}
	Accept(intType, r)
	assert.Equal(t, "integer", r.visited)

	arr, err := NewStaticArray(intType, 4, 32)
	require.NoError(t, err)
	Accept(arr, r)
	assert.Equal(t, "static_array", r.visited)
}
