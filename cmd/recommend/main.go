// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/hamadayuuki/irodori-api/internal/config"
	"github.com/hamadayuuki/irodori-api/internal/logging"
	"github.com/hamadayuuki/irodori-api/internal/metrics"
	"github.com/hamadayuuki/irodori-api/internal/recommend"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// options holds the parsed command line.
type options struct {
	configPath      string
	modelDir        string
	metricsTextfile string
	req             recommend.Request
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one recommendation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return writeError(stdout, err)
	}
	if opts.modelDir != "" {
		cfg.Recommend.ModelDir = opts.modelDir
	}
	if opts.metricsTextfile != "" {
		cfg.Metrics.Textfile = opts.metricsTextfile
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logCfg.Output = stderr
	logging.Init(logCfg)
	logger := logging.Logger()

	engine, err := initEngine(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create recommendation engine")
		return writeError(stdout, err)
	}

	ctx = logging.ContextWithNewRequestID(ctx)
	ctx = logging.ContextWithLogger(ctx, logging.WithComponent("cli"))
	resp, err := engine.Recommend(ctx, opts.req)
	if cfg.Metrics.Textfile != "" {
		if werr := metrics.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			logging.Ctx(ctx).Warn().Err(werr).Str("path", cfg.Metrics.Textfile).Msg("failed to write metrics textfile")
		}
	}
	if err != nil {
		logging.Ctx(ctx).Info().Err(err).Str("outcome", recommend.ErrorKind(err)).Msg("no recommendation")
		return writeError(stdout, err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return writeError(stdout, err)
	}
	out = append(out, '\n')
	if _, err := stdout.Write(out); err != nil {
		return exitError
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var (
		opts   options
		minSim float64
	)

	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file path (default: CONFIG_PATH or irodori.yaml)")
	fs.StringVar(&opts.modelDir, "model-dir", "", "directory holding model artifacts")
	fs.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	fs.StringVar(&opts.req.Segment, "segment", "", "segment to query, e.g. men or women")
	fs.StringVar(&opts.req.Type, "type", "", "clothing type, e.g. ボトムス")
	fs.StringVar(&opts.req.Category, "category", "", "garment category, e.g. ワイドパンツ")
	fs.StringVar(&opts.req.Text, "text", "", "garment description")
	fs.IntVar(&opts.req.NumOutfits, "outfits", 0, "number of outfits (default from config)")
	fs.IntVar(&opts.req.NumCandidates, "candidates", 0, "candidates per type (default from config)")
	fs.Float64Var(&minSim, "min-sim", 0, "minimum similarity in [0, 1] (default from config)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "min-sim" {
			opts.req.MinSimilarity = &minSim
		}
	})
	return opts, nil
}

// writeError prints err as {"error": "..."} and returns exitError.
func writeError(w io.Writer, err error) int {
	out, merr := json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
	if merr != nil {
		return exitError
	}
	_, _ = w.Write(append(out, '\n'))
	return exitError
}
