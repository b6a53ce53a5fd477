// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

// EnvValue is one value of a TraceClass environment entry: either a string or a
// signed 64-bit integer, mirroring the two literal kinds TSDL's env{} block
// supports.
type EnvValue struct {
	str      string
	i64      int64
	isString bool
}

// StringEnv builds a string-valued environment entry.
func StringEnv(s string) EnvValue {
	return EnvValue{str: s, isString: true}
}

// IntEnv builds an integer-valued environment entry.
func IntEnv(n int64) EnvValue {
	return EnvValue{i64: n}
}

// IsString reports whether the value is the string variant.
func (v EnvValue) IsString() bool {
	return v.isString
}

// StringValue returns the string payload; valid only when IsString is true.
func (v EnvValue) StringValue() string {
	return v.str
}

// IntValue returns the integer payload; valid only when IsString is false.
func (v EnvValue) IntValue() int64 {
	return v.i64
}

// EnvEntry is one (key, value) pair of a TraceClass environment. The
// environment is modeled as an ordered list, not a map, because TSDL emits
// env{} entries in insertion order and the spec requires that order preserved.
type EnvEntry struct {
	Key   string
	Value EnvValue
}
