// tsdump prints the headers of the packets in MPEG-2 transport stream captures.
//
// Usage:
//
//	tsdump [-config tsdump.toml] [-pids 0x100,0x101] [-format text|json] [-strict] capture.ts.zst
//
// Captures may be plain or compressed with gzip (.gz), snappy (.sz) or zstd (.zst).
// With no files, stdin is read.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bearlytools/ptl/internal/capture"
	"github.com/bearlytools/ptl/languages/go/errors"
)

func main() {
	cfg, files, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		exitf("tsdump: %s", err)
	}

	log := initLogger("tsdump", cfg.LogLevel, os.Stderr)
	if len(files) == 0 {
		files = []string{"-"}
	}

	d := newDumper(cfg, os.Stdout, log)
	for _, path := range files {
		if err := dumpFile(d, path); err != nil {
			log.Error().Err(err).Str("file", path).Msg("dump failed")
			os.Exit(1)
		}
	}
}

func dumpFile(d *dumper, path string) error {
	r, err := capture.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	st, err := d.dump(r)
	d.log.Info().
		Str("file", path).
		Int64("packets", st.Packets).
		Int64("printed", st.Printed).
		Int64("lost_sync", st.LostSync).
		Int64("tei", st.TransportErrs).
		Int64("duplicates", st.Duplicates).
		Int64("cc_errors", st.Discontinuities).
		Msg("done")
	return err
}

// initLogger writes to "w" rather than stdout, which carries the dump.
func initLogger(app string, level zerolog.Level, w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

func exitf(s string, i ...any) {
	fmt.Fprintf(os.Stderr, s+"\n", i...)
	os.Exit(1)
}
