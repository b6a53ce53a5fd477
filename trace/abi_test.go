// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultABIValidates(t *testing.T) {
	assert.NoError(t, DefaultABI().Validate())
}

func TestABIValidateRejectsMismatchedLongWidth(t *testing.T) {
	abi := DefaultABI()
	abi.BitsPerLong = 32
	assert.ErrorIs(t, abi.Validate(), ErrInvalidABI)
}

func TestABIValidateRejectsZeroSize(t *testing.T) {
	abi := DefaultABI()
	abi.Uint32Size = 0
	assert.ErrorIs(t, abi.Validate(), ErrInvalidABI)
}

func TestABIValidateRejectsAlignmentAboveSize(t *testing.T) {
	abi := DefaultABI()
	abi.Uint16Alignment = 32
	assert.ErrorIs(t, abi.Validate(), ErrInvalidABI)
}
