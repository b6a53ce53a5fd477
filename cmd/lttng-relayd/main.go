// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"go.lttng.org/relayd-core/config"
	"go.lttng.org/relayd-core/periodiccaller"
	"go.lttng.org/relayd-core/registry"
)

// Short copyright / license text.
var copyright = `Copyright The LTTng Authors

This program is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License version 2 only,
as published by the Free Software Foundation.
`

var version = "dev"

type exitCode int

const (
	exitSuccess exitCode = 0
	exitFailure exitCode = 1
	// Go's flag package calls os.Exit(2) on flag parse errors when ExitOnError
	// is set; ff.Parse propagates the same error instead, so this value is used
	// for our own equivalent parse-error exit here.
	exitParseError exitCode = 2
)

func main() {
	os.Exit(int(mainWithExitCode()))
}

func mainWithExitCode() exitCode {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "lttng-relayd: failed to parse arguments: %v\n", err)
		return exitParseError
	}

	if cfg.Copyright {
		fmt.Print(copyright)
		return exitSuccess
	}

	if cfg.Version {
		fmt.Printf("lttng-relayd %s\n", version)
		return exitSuccess
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
		cfg.Dump()
	}

	if cfg.PprofAddr != "" {
		go func() {
			//nolint:gosec // debug-only listener, not exposed in production topology.
			if err := http.ListenAndServe(cfg.PprofAddr, nil); err != nil {
				log.Errorf("Serving pprof on %s failed: %s", cfg.PprofAddr, err)
			}
		}()
	}

	log.Infof("Starting lttng-relayd %s", version)

	reg := registry.New()
	log.Debugf("session registry ready (domain=%p)", reg.Domain)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Drives the live-timer tick across every currently-registered session.
	// The actual index-flush announcement to attached viewers is the wire
	// layer's job; this loop only logs the tick so the mechanism has a real
	// caller even with no wire layer wired in yet.
	stopLiveTimer := periodiccaller.Start(ctx, cfg.LiveTimerInterval, func() {
		log.Debugf("live-timer tick: %d session(s) registered", reg.Sessions().Len())
	})
	defer stopLiveTimer()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Infof("Received signal %s, shutting down", sig)

	return exitSuccess
}
