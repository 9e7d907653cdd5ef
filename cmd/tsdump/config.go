package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gostdlib/base/context"
	"github.com/rs/zerolog"

	"github.com/bearlytools/ptl/languages/go/errors"
	"github.com/bearlytools/ptl/layouts/mpeg2ts"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type config struct {
	// PIDs limits output to these PIDs. Empty prints every PID.
	PIDs       []uint16
	Format     string
	LogLevel   zerolog.Level
	StrictSync bool
}

func defaultConfig() config {
	return config{
		Format:   formatText,
		LogLevel: zerolog.InfoLevel,
	}
}

type fileConfig struct {
	PIDs       []int64 `toml:"pids"`
	Format     string  `toml:"format"`
	LogLevel   string  `toml:"log_level"`
	StrictSync bool    `toml:"strict_sync"`
}

// loadConfig applies the settings in the TOML file at "path" on top of "cfg".
func loadConfig(path string, cfg config) (config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, configErr(errors.TypeFS, fmt.Errorf("load tsdump config: %w", err))
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return config{}, configErr(errors.TypeParameter, fmt.Errorf("load tsdump config: unknown key %q", undec[0].String()))
	}

	if meta.IsDefined("pids") {
		cfg.PIDs = cfg.PIDs[:0]
		for _, p := range raw.PIDs {
			if p < 0 || p > mpeg2ts.NullPID {
				return config{}, configErr(errors.TypeParameter, fmt.Errorf("parse pids: %d is not a PID", p))
			}
			cfg.PIDs = append(cfg.PIDs, uint16(p))
		}
	}

	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}

	if meta.IsDefined("log_level") {
		l, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return config{}, configErr(errors.TypeParameter, fmt.Errorf("parse log_level: %w", err))
		}
		cfg.LogLevel = l
	}

	if meta.IsDefined("strict_sync") {
		cfg.StrictSync = raw.StrictSync
	}

	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch c.Format {
	case formatText, formatJSON:
	default:
		return configErr(errors.TypeParameter, fmt.Errorf("format must be %q or %q, got %q", formatText, formatJSON, c.Format))
	}
	return nil
}

// parseArgs reads the command line. Flags that are set override the config file.
// The remaining arguments are the capture files to read.
func parseArgs(args []string, stderr io.Writer) (config, []string, error) {
	fs := flag.NewFlagSet("tsdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: tsdump [flags] [capture.ts[.gz|.sz|.zst] ...]")
		fs.PrintDefaults()
	}

	var (
		confPath = fs.String("config", "", "path to a TOML config file")
		pids     = fs.String("pids", "", "comma separated PIDs to print, decimal or 0x hex")
		format   = fs.String("format", formatText, "output format, text or json")
		level    = fs.String("log-level", "info", "log level")
		strict   = fs.Bool("strict", false, "stop at the first packet without a sync byte")
	)
	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}

	cfg := defaultConfig()
	if *confPath != "" {
		var err error
		cfg, err = loadConfig(*confPath, cfg)
		if err != nil {
			return config{}, nil, err
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "pids":
			cfg.PIDs, err = parsePIDs(*pids)
		case "format":
			cfg.Format = strings.ToLower(*format)
		case "log-level":
			cfg.LogLevel, err = zerolog.ParseLevel(*level)
			if err != nil {
				err = configErr(errors.TypeParameter, fmt.Errorf("parse -log-level: %w", err))
			}
		case "strict":
			cfg.StrictSync = *strict
		}
	})
	if err != nil {
		return config{}, nil, err
	}
	if err := cfg.validate(); err != nil {
		return config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

func parsePIDs(s string) ([]uint16, error) {
	var out []uint16
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 0, 16)
		if err != nil || v > mpeg2ts.NullPID {
			return nil, configErr(errors.TypeParameter, fmt.Errorf("parse pids: %q is not a PID", p))
		}
		out = append(out, uint16(v))
	}
	return out, nil
}

// configErr wraps a bad setting as a user error.
func configErr(t errors.Type, err error) error {
	return errors.E(context.Background(), errors.CatUser, t, err, errors.WithCallNum(3))
}
