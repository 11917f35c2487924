package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ainergiz/cardlens/internal/analysis"
	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
	"github.com/ainergiz/cardlens/internal/output"
)

// reportFlags are the flags shared by the top-N report commands.
type reportFlags struct {
	dataDir string
	top     int
	verbose bool
}

func newReportFlagSet(name string) (*flag.FlagSet, *reportFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	rf := &reportFlags{}
	fs.StringVar(&rf.dataDir, "data", "", "CARD data directory (default: from config)")
	fs.IntVar(&rf.top, "n", viper.GetInt("report.top"), "Number of top entries to report")
	fs.BoolVar(&rf.verbose, "verbose", false, "Verbose logging")
	return fs, rf
}

func runClasses(args []string) int {
	fs, rf := newReportFlagSet("classes")
	fs.Usage = reportUsage(fs, "classes", "Report the drug classes with the most resistance determinants.")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	return runGeneReport(rf, "Drug_Class", analysis.GeneDrugClasses)
}

func runMechanisms(args []string) int {
	fs, rf := newReportFlagSet("mechanisms")
	fs.Usage = reportUsage(fs, "mechanisms", "Report the most frequent resistance mechanisms in the gene index.")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	return runGeneReport(rf, "Resistance_Mechanism", analysis.GeneMechanisms)
}

// runGeneReport loads the gene index and writes the top-N table for one
// gene-record dimension.
func runGeneReport(rf *reportFlags, label string, keys func(*ontology.Resolver) func(card.GeneRecord) []string) int {
	logger := newLogger(rf.verbose)
	defer logger.Sync()

	dataDir := resolveDataDir(rf.dataDir)
	t, err := loadTables(dataDir, false, logger)
	if err != nil {
		hintMissingData(err, dataDir)
		return ExitError
	}

	result := analysis.Count(t.Genes, keys(t.Resolver))
	entries, err := result.TopN(rf.top)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyInput) {
			fmt.Fprintf(os.Stderr, "Error: gene index produced no groups: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return ExitError
	}

	if err := writeCounts(label, entries); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitError
	}

	reportMisses(t.Resolver)
	return ExitSuccess
}

func runFamilies(args []string) int {
	fs, rf := newReportFlagSet("families")
	fs.Usage = reportUsage(fs, "families", "Report the most frequent AMR gene families in the gene index.")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	return runGeneReport(rf, "Gene_Family", analysis.GeneFamilies)
}

func runSnps(args []string) int {
	fs, rf := newReportFlagSet("snps")
	fs.Usage = reportUsage(fs, "snps", "Report the genes most frequently hit by resistance-conferring SNPs.")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	logger := newLogger(rf.verbose)
	defer logger.Sync()

	dataDir := resolveDataDir(rf.dataDir)
	t, err := loadTables(dataDir, true, logger)
	if err != nil {
		hintMissingData(err, dataDir)
		return ExitError
	}

	result := analysis.Count(t.SNPs, analysis.SNPGenes())
	entries, err := result.TopN(rf.top)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if err := writeCounts("Gene", entries); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return ExitError
	}

	reportMisses(t.Resolver)
	return ExitSuccess
}

// writeCounts writes a count table to stdout.
func writeCounts(label string, entries []analysis.Entry) error {
	cw := output.NewCountWriter(os.Stdout, label)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteAll(entries); err != nil {
		return err
	}
	return cw.Flush()
}

func reportUsage(fs *flag.FlagSet, name, summary string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, `%s

Usage:
  cardlens %s [options]

Options:
`, summary, name)
		fs.PrintDefaults()
	}
}
