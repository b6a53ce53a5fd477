// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreamClassRejectsOrphanClockRole(t *testing.T) {
	tsField, err := NewInteger(64, 8, false, BaseHex, LittleEndian, RoleDefaultClockTimestamp)
	require.NoError(t, err)
	header, err := NewStructure(Field{Name: "timestamp", Type: tsField})
	require.NoError(t, err)

	_, err = NewStreamClass(0, "", header, nil, nil)
	assert.ErrorIs(t, err, ErrMissingDefaultClock)

	sc, err := NewStreamClass(0, "monotonic", header, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "monotonic", sc.DefaultClockClassName)
}

func TestTraceClassAddStreamClassValidatesClockReference(t *testing.T) {
	tc, err := NewTraceClass(DefaultABI())
	require.NoError(t, err)

	intType, err := NewInteger(32, 32, false, BaseDecimal, LittleEndian)
	require.NoError(t, err)
	header, err := NewStructure(Field{Name: "id", Type: intType})
	require.NoError(t, err)

	sc, err := NewStreamClass(0, "", header, nil, nil)
	require.NoError(t, err)
	sc.DefaultClockClassName = "monotonic"

	err = tc.AddStreamClass(sc)
	assert.ErrorIs(t, err, ErrMissingDefaultClock)

	clock, err := NewClockClass("monotonic", 1_000_000_000)
	require.NoError(t, err)
	require.NoError(t, tc.AddClockClass(clock))

	require.NoError(t, tc.AddStreamClass(sc))
	assert.Len(t, tc.StreamClasses(), 1)
}

func TestTraceClassAddClockClassRejectsDuplicateName(t *testing.T) {
	tc, err := NewTraceClass(DefaultABI())
	require.NoError(t, err)

	c1, err := NewClockClass("monotonic", 1_000_000_000)
	require.NoError(t, err)
	c2, err := NewClockClass("monotonic", 2_000_000_000)
	require.NoError(t, err)

	require.NoError(t, tc.AddClockClass(c1))
	err = tc.AddClockClass(c2)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

// traceVisitRecorder implements TraceClassVisitor, recording the visitation order.
type traceVisitRecorder struct {
	order []string
}

func (r *traceVisitRecorder) OnTraceClass(*TraceClass)         { r.order = append(r.order, "trace") }
func (r *traceVisitRecorder) OnEnvironment(key string, _ EnvValue) {
	r.order = append(r.order, "env:"+key)
}
func (r *traceVisitRecorder) OnClockClass(c *ClockClass) { r.order = append(r.order, "clock:"+c.Name) }
func (r *traceVisitRecorder) OnStreamClass(s *StreamClass) {
	r.order = append(r.order, "stream")
}
func (r *traceVisitRecorder) OnEventClass(e *EventClass) {
	r.order = append(r.order, "event:"+e.Name)
}

func TestTraceClassAcceptOrdering(t *testing.T) {
	tc, err := NewTraceClass(DefaultABI())
	require.NoError(t, err)
	tc.SetEnv("domain", StringEnv("kernel"))
	tc.SetEnv("tracer_major", IntEnv(2))

	clock, err := NewClockClass("monotonic", 1_000_000_000)
	require.NoError(t, err)
	require.NoError(t, tc.AddClockClass(clock))

	sc, err := NewStreamClass(0, "", nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, tc.AddStreamClass(sc))

	ec, err := NewEventClass(0, "sched_switch", 0, nil)
	require.NoError(t, err)
	require.NoError(t, sc.AddEventClass(ec))

	r := &traceVisitRecorder{}
	tc.Accept(r)

	assert.Equal(t, []string{
		"trace",
		"env:domain",
		"env:tracer_major",
		"clock:monotonic",
		"stream",
		"event:sched_switch",
	}, r.order)
}
