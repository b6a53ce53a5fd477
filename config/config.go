// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

// Package config parses the daemon's bootstrap flags: the trace ABI defaults,
// live-timer interval, trace storage root, and the usual verbose/version/
// copyright switches. The filter-expression language and wire listen sockets
// are out of scope and have no flags here.
package config // import "go.lttng.org/relayd-core/config"

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3"
	log "github.com/sirupsen/logrus"
	"go.lttng.org/relayd-core/trace"
)

const (
	defaultLiveTimerInterval = 3 * time.Second
	defaultTraceRootDir      = "."
)

// Help strings for command line arguments.
var (
	abiBigEndianHelp = "Assume a big-endian producer ABI instead of the little-endian default."
	abiLongWidthHelp = "Bit width of the producer's long/pointer-sized integer."
	configHelp       = "Path to a plain-text config file of flag values."
	copyrightHelp    = "Show copyright and short license text."
	liveTimerHelp    = "Interval between live-timer ticks."
	pprofHelp        = "Listening address (e.g. localhost:6060) to serve pprof information."
	traceRootDirHelp = "Root directory under which relay sessions create their trace subpaths."
	verboseHelp      = "Enable verbose logging."
	versionHelp      = "Show version."
)

// Config is the daemon's parsed bootstrap configuration.
type Config struct {
	ABI               trace.ABI
	LiveTimerInterval time.Duration
	TraceRootDir      string
	PprofAddr         string
	Verbose           bool
	Version           bool
	Copyright         bool

	fs *flag.FlagSet
}

// ParseArgs parses args (normally os.Args[1:]) into a Config, layering
// environment variable and config-file support on top of the standard flag
// package via ff.Parse, the way the teacher's own parseArgs does.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{ABI: trace.DefaultABI()}

	fs := flag.NewFlagSet("lttng-relayd", flag.ContinueOnError)

	var bigEndian bool
	var longWidth uint

	// Keep the parameters ordered alphabetically in the source code.
	fs.BoolVar(&bigEndian, "abi-big-endian", false, abiBigEndianHelp)
	fs.UintVar(&longWidth, "abi-long-width", uint(cfg.ABI.LongWidth), abiLongWidthHelp)
	fs.String("config", "", configHelp)
	fs.BoolVar(&cfg.Copyright, "copyright", false, copyrightHelp)
	fs.DurationVar(&cfg.LiveTimerInterval, "live-timer", defaultLiveTimerInterval, liveTimerHelp)
	fs.StringVar(&cfg.PprofAddr, "pprof", "", pprofHelp)
	fs.StringVar(&cfg.TraceRootDir, "trace-root", defaultTraceRootDir, traceRootDirHelp)
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, verboseHelp)
	fs.BoolVar(&cfg.Version, "version", false, versionHelp)

	fs.Usage = func() { fs.PrintDefaults() }
	cfg.fs = fs

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("LTTNG_RELAYD"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	); err != nil {
		return nil, fmt.Errorf("config: parsing arguments: %w", err)
	}

	if bigEndian {
		cfg.ABI.ByteOrder = trace.BigEndian
	}
	cfg.ABI.LongWidth = uint8(longWidth)
	cfg.ABI.LongAlignment = uint8(longWidth)
	cfg.ABI.BitsPerLong = uint8(longWidth)

	if err := cfg.ABI.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Dump logs every flag's current value at debug level, mirroring the
// teacher's verbose-mode flag dump.
func (c *Config) Dump() {
	c.fs.VisitAll(func(f *flag.Flag) {
		log.Debugf("config: -%s=%s", f.Name, f.Value.String())
	})
}

// PrintUsage writes the flag set's usage text to stderr.
func (c *Config) PrintUsage() {
	c.fs.SetOutput(os.Stderr)
	c.fs.Usage()
}
