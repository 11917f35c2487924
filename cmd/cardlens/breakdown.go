package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ainergiz/cardlens/internal/analysis"
	"github.com/ainergiz/cardlens/internal/output"
)

func runBreakdown(args []string) int {
	fs := flag.NewFlagSet("breakdown", flag.ExitOnError)

	var (
		dataDir string
		class   string
		workers int
		verbose bool
	)

	fs.StringVar(&dataDir, "data", "", "CARD data directory (default: from config)")
	fs.StringVar(&class, "class", "", "Drug class to break down (default: breakdown.class config)")
	fs.IntVar(&workers, "workers", viper.GetInt("breakdown.workers"), "Worker count for multi-class breakdowns (0 = all CPUs)")
	fs.BoolVar(&verbose, "verbose", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Split the resistance burden for a drug class into acquired-gene
vs. point-mutation counts.

Usage:
  cardlens breakdown [options] [drug-class ...]

Arguments:
  [drug-class ...]  Drug classes to analyze. When several are given they are
                    computed in parallel. Defaults to --class.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  cardlens breakdown --class "fluoroquinolone antibiotic"
  cardlens breakdown "penam" "cephalosporin" "rifamycin antibiotic"
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	classes := fs.Args()
	if len(classes) == 0 {
		if class == "" {
			class = viper.GetString("breakdown.class")
		}
		classes = []string{class}
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	dir := resolveDataDir(dataDir)
	t, err := loadTables(dir, true, logger)
	if err != nil {
		hintMissingData(err, dir)
		return ExitError
	}

	var breakdowns []analysis.Breakdown
	if len(classes) == 1 {
		breakdowns = []analysis.Breakdown{
			analysis.BreakdownForClass(t.Genes, t.SNPs, t.Resolver, classes[0]),
		}
	} else {
		breakdowns = analysis.BreakdownAll(t.Genes, t.SNPs, t.Resolver, classes, workers)
	}

	bw := output.NewBreakdownWriter(os.Stdout)
	if err := bw.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}
	for _, b := range breakdowns {
		if err := bw.Write(b); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing breakdown: %v\n", err)
			return ExitError
		}
		if b.NoData {
			fmt.Fprintf(os.Stderr, "Note: %q matched no records in either source\n", b.DrugClass)
		}
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}

	reportMisses(t.Resolver)
	return ExitSuccess
}
