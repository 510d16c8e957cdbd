// Command loglens-backup archives configured directories to local and
// cloud destinations. It is a companion tool to loglens and shares no data
// model with the log analysis engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/loglens/internal/backup"
)

const sampleConfigFile = "backup_config.json"

// stringList collects repeatable string flags.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	var (
		configPath   string
		sources      stringList
		destinations stringList
		createConfig bool
		dryRun       bool
	)

	flag.StringVar(&configPath, "config", "", "configuration file path")
	flag.StringVar(&configPath, "c", "", "shorthand for -config")
	flag.Var(&sources, "source", "source directory to back up (repeatable)")
	flag.Var(&destinations, "destination", "backup destination directory (repeatable)")
	flag.BoolVar(&createConfig, "create-config", false, "write a sample configuration file and exit")
	flag.BoolVar(&dryRun, "dry-run", false, "validate the configuration without backing up")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if createConfig {
		if err := backup.SampleConfig().Save(sampleConfigFile); err != nil {
			logger.Fatal().Err(err).Msg("could not write sample configuration")
		}
		fmt.Printf("Sample configuration created: %s\n", sampleConfigFile)
		fmt.Println("Edit the configuration file before use.")
		return
	}

	cfg, err := backup.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load configuration")
	}
	if len(sources) > 0 {
		cfg.Sources = sources
	}
	if len(destinations) > 0 {
		cfg.Destinations = destinations
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	mgr := backup.NewManager(cfg, logger)

	if dryRun {
		os.Exit(runDryRun(mgr, logger))
	}

	ctx, cancel := signalContext()
	defer cancel()

	rep := mgr.RunOnce(ctx)
	writeRunReport(rep, logger)
	printSummary(rep)

	if !rep.Success {
		os.Exit(1)
	}
}

func runDryRun(mgr *backup.Manager, logger zerolog.Logger) int {
	fmt.Println("DRY RUN - validating configuration...")
	if errs := mgr.ValidatePaths(); len(errs) > 0 {
		for _, err := range errs {
			logger.Error().Msg(err.Error())
		}
		return 1
	}
	fmt.Println("Configuration is valid.")
	fmt.Printf("Total estimated size: %d bytes\n", mgr.TotalSourceSize())
	return 0
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func writeRunReport(rep *backup.Report, logger zerolog.Logger) {
	path, err := backup.DefaultReportPath()
	if err == nil {
		err = backup.WriteReport(rep, path)
	}
	if err != nil {
		logger.Error().Err(err).Msg("could not write run report")
		return
	}
	logger.Info().Str("file", path).Msg("run report written")
}

func printSummary(rep *backup.Report) {
	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("BACKUP REPORT")
	fmt.Println(rule)
	status := "SUCCESS"
	if !rep.Success {
		status = "FAILED"
	}
	fmt.Printf("Status:      %s\n", status)
	fmt.Printf("Run ID:      %s\n", rep.ID)
	if rep.BackupFile != "" {
		fmt.Printf("Backup File: %s\n", rep.BackupFile)
		fmt.Printf("Checksum:    %s\n", rep.Checksum)
	}
	fmt.Printf("Duration:    %.2fs\n", rep.DurationSeconds)
	fmt.Printf("Sources:     %s\n", strings.Join(rep.Sources, ", "))
	for _, errMsg := range rep.Errors {
		fmt.Printf("Error:       %s\n", errMsg)
	}
	fmt.Println(rule)
}
