// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lttng.org/relayd-core/relay"
)

func TestCreateAndGetSession(t *testing.T) {
	reg := New()

	ref := reg.CreateSession("live", "host.example", 3*time.Second)
	id := ref.Get().ID
	ref.Release()

	got, err := reg.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, "live", got.Get().Name)
	got.Release()
}

func TestGetUnknownSessionVanishes(t *testing.T) {
	reg := New()
	_, err := reg.GetSession(12345)
	assert.Error(t, err)
}

func TestPublishAndAcquireViewerStream(t *testing.T) {
	reg := New()

	sessionRef := reg.CreateSession("live", "host.example", 3*time.Second)
	sessionID := sessionRef.Get().ID
	sessionRef.Release()

	id, tableRef := reg.PublishViewerStream(42, sessionID)

	acquired, err := reg.AcquireViewerStream(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), acquired.Get().StreamID)

	acquired.Release()
	tableRef.Release()
}

func TestCloseSessionForViewer(t *testing.T) {
	reg := New()

	sessionRef := reg.CreateSession("live", "host.example", 3*time.Second)
	sessionID := sessionRef.Get().ID
	sessionRef.Release()

	vs := relay.NewViewerSession()
	res, err := vs.Attach(reg.Domain, reg.Sessions(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, relay.AttachOK, res)

	_, tableRef := reg.PublishViewerStream(7, sessionID)
	sessionStreamRef := tableRef.Clone()
	vs.AttachViewerStream(7, tableRef, sessionStreamRef)

	reg.CloseSessionForViewer(vs, sessionID)

	_, err = reg.GetSession(sessionID)
	assert.NoError(t, err, "closing for the viewer must not tear down the session itself")
}
