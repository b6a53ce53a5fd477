// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package tsdl

import "errors"

var (
	// ErrInvalidIdentifier is returned by EscapeIdentifier for an empty input.
	ErrInvalidIdentifier = errors.New("tsdl: invalid identifier")

	// ErrInvalidFieldType names an array element type this package does not
	// know how to lower. It is not returned: the field visitor embeds its text
	// in a marker comment in the rendered output instead.
	ErrInvalidFieldType = errors.New("tsdl: invalid field type")

	// ErrIOAppend wraps an error returned by the collaborator-supplied
	// AppendFragment callback.
	ErrIOAppend = errors.New("tsdl: appending fragment")
)
