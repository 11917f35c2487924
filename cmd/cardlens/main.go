// Package main provides the cardlens command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Parse()

	if showVersion {
		fmt.Printf("cardlens version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "classes":
		return runClasses(args[1:])
	case "mechanisms":
		return runMechanisms(args[1:])
	case "families":
		return runFamilies(args[1:])
	case "snps":
		return runSnps(args[1:])
	case "breakdown":
		return runBreakdown(args[1:])
	case "explore":
		return runExplore(args[1:])
	case "export":
		return runExport(args[1:])
	case "download":
		return runDownload(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `cardlens - CARD antimicrobial-resistance analysis

Usage:
  cardlens [options] <command> [arguments]

Commands:
  classes     Report the most frequent drug classes in the gene index
  mechanisms  Report the most frequent resistance mechanisms
  families    Report the most frequent AMR gene families
  snps        Report the genes most frequently hit by resistance SNPs
  breakdown   Split resistance for a drug class into acquired-gene vs. point-mutation counts
  explore     Preview the CARD reference files in the data directory
  export      Export loaded tables and breakdowns to a DuckDB database
  download    Download the CARD reference data archive
  config      Manage cardlens configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Download the CARD reference data (one-time setup)
  cardlens download

  # Top 10 drug classes by resistance gene count
  cardlens classes

  # Acquired-gene vs. point-mutation breakdown for one drug class
  cardlens breakdown --class "fluoroquinolone antibiotic"

  # Export everything into a queryable DuckDB file
  cardlens export --output card.duckdb

For more information on a command, use:
  cardlens <command> --help
`)
}

// initConfig loads ~/.cardlens.yaml when present and sets defaults. A missing
// config file is fine.
func initConfig() {
	viper.SetConfigName(".cardlens")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	viper.SetDefault("data.dir", defaultDataDir())
	viper.SetDefault("report.top", 10)
	viper.SetDefault("breakdown.class", "fluoroquinolone antibiotic")
	viper.SetDefault("breakdown.workers", 0)

	_ = viper.ReadInConfig()
}

// newLogger builds the CLI logger. Component warnings (resolution misses) go
// to stderr; --verbose lowers the level to debug.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
