// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lttng.org/relayd-core/trace"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := ParseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, trace.LittleEndian, cfg.ABI.ByteOrder)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, defaultLiveTimerInterval, cfg.LiveTimerInterval)
}

func TestParseArgsOverrides(t *testing.T) {
	cfg, err := ParseArgs([]string{"-verbose", "-abi-big-endian", "-live-timer=5s"})
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, trace.BigEndian, cfg.ABI.ByteOrder)
	assert.Equal(t, 5*time.Second, cfg.LiveTimerInterval)
}
