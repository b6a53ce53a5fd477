// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.lttng.org/relayd-core/epoch"
)

func TestSessionCloseClosesLinkedTraceStreams(t *testing.T) {
	domain := epoch.NewDomain()
	session := NewSession(domain, 1, "live", "host.example", 3*time.Second)

	traceRef := session.GetCTFTraceByPathOrCreate("ust/uid/1000/64-bit")
	trace := traceRef.Get()
	stream := trace.AddStream(traceRef)
	assert.Equal(t, StreamAllocated, stream.State())

	session.Close()

	assert.Equal(t, StreamClosing, stream.State(), "Session.Close must close every linked trace's streams")

	traceRef.Release()
	stream.Destroy()
}
