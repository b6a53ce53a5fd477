// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package periodiccaller allows periodic calls of functions. It backs the daemon's
// live-timer tick in cmd/lttng-relayd.
package periodiccaller

import (
	"context"
	"time"
)

// Start starts a timer that calls <callback> every <interval> until the <ctx> is canceled.
func Start(ctx context.Context, interval time.Duration, callback func()) func() {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				callback()
			case <-ctx.Done():
				return
			}
		}
	}()

	return ticker.Stop
}

// StartWithManualTrigger starts a timer that calls <callback> every <interval>
// until the <ctx> is canceled. Additionally the 'trigger' channel can be used to
// trigger the callback immediately, mirroring how a live-viewer explicit "get new
// streams" request piggybacks on the periodic live-timer tick.
func StartWithManualTrigger(ctx context.Context, interval time.Duration, trigger chan bool,
	callback func(manualTrigger bool)) func() {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				callback(false)
			case <-trigger:
				callback(true)
			case <-ctx.Done():
				return
			}
		}
	}()

	return ticker.Stop
}
