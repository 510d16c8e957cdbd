package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var (
		configPath  string
		showVersion bool
		outputPath  string
		format      string
		sample      bool
		serve       bool
	)

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/loglens/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.StringVar(&outputPath, "output", "", "write the report to a file instead of stdout")
	flag.StringVar(&outputPath, "o", "", "shorthand for -output")
	flag.StringVar(&format, "format", "", "report format: text or json")
	flag.BoolVar(&sample, "sample", false, "generate, analyze, and clean up a sample log")
	flag.BoolVar(&serve, "serve", false, "keep the report API running after analysis")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("loglens - Access Log Analyzer\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	logPath := flag.Arg(0)
	if logPath == "" && !sample {
		fmt.Fprintln(os.Stderr, "Error: provide a log file or use -sample")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if format != "" {
		cfg.Format = format
	}
	if serve {
		cfg.APIEnabled = true
	}

	if err := run(cfg, runOptions{
		logPath:    logPath,
		outputPath: outputPath,
		sample:     sample,
		serve:      serve,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "loglens analyzes web server access logs for traffic, performance, and security signals.\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  loglens [options] <logfile>\n")
	fmt.Fprintf(os.Stderr, "  loglens -sample\n")
	fmt.Fprintf(os.Stderr, "  cat access.log | loglens [options] -\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOGLENS")
	v.AutomaticEnv()

	v.SetDefault("top-n", defaultTopN)
	v.SetDefault("format", "text")
	v.SetDefault("no-color", false)
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-port", defaultAPIPort)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "loglens", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.TopN <= 0 {
		return cfg, fmt.Errorf("invalid top-n: %d", cfg.TopN)
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}
	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}
