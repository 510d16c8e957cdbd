package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/loglens/internal/engine"
	"github.com/tinytelemetry/loglens/internal/httpserver"
	"github.com/tinytelemetry/loglens/internal/model"
	"github.com/tinytelemetry/loglens/internal/report"
	"github.com/tinytelemetry/loglens/internal/secscan"
)

type runOptions struct {
	logPath    string
	outputPath string
	sample     bool
	serve      bool
}

// run performs one analysis pass and renders the report. With -serve it
// then keeps the report API up until interrupted.
func run(cfg appConfig, opts runOptions) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	logPath := opts.logPath
	if opts.sample {
		samplePath, err := createSampleLog()
		if err != nil {
			return fmt.Errorf("creating sample log: %w", err)
		}
		logger.Info().Str("file", samplePath).Msg("sample log created")
		defer func() {
			if err := os.Remove(samplePath); err == nil {
				logger.Info().Str("file", samplePath).Msg("sample log cleaned up")
			}
		}()
		logPath = samplePath
	}

	var stats *model.AggregateStats
	if logPath == "-" {
		logger.Info().Msg("reading log from stdin")
		stats = engine.Run(os.Stdin)
	} else {
		logger.Info().Str("file", logPath).Msg("reading log file")
		var err error
		stats, err = engine.RunFile(logPath)
		if err != nil {
			return err
		}
	}

	findings := secscan.Scan(stats)
	logger.Info().
		Int64("total_requests", stats.TotalRequests).
		Int("findings", len(findings)).
		Msg("analysis complete")

	data := report.Data{
		Source:   logPath,
		Stats:    stats,
		Findings: findings,
	}

	if err := writeReport(cfg, opts, data, logger); err != nil {
		return err
	}

	if cfg.APIEnabled {
		return serveReport(cfg, data, logger)
	}
	return nil
}

func writeReport(cfg appConfig, opts runOptions, data report.Data, logger zerolog.Logger) error {
	renderOpts := report.Options{TopN: cfg.TopN, NoColor: cfg.NoColor}

	if opts.outputPath == "" {
		return report.Render(os.Stdout, data, report.Format(cfg.Format), renderOpts)
	}

	f, err := os.Create(opts.outputPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	// Styling escapes have no place in a saved report.
	renderOpts.NoColor = true
	if err := report.Render(f, data, report.Format(cfg.Format), renderOpts); err != nil {
		return err
	}
	logger.Info().Str("file", opts.outputPath).Msg("report saved")
	return nil
}

func serveReport(cfg appConfig, data report.Data, logger zerolog.Logger) error {
	server := httpserver.NewServer(cfg.APIAddr, data)
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting report API: %w", err)
	}
	defer server.Stop()
	logger.Info().Str("addr", server.Addr()).Msg("report API listening")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-sigCh:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	return g.Wait()
}
