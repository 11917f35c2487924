package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ainergiz/cardlens/internal/analysis"
	"github.com/ainergiz/cardlens/internal/store"
)

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	var (
		dataDir    string
		outputPath string
		breakdowns bool
		workers    int
		top        int
		verbose    bool
	)

	fs.StringVar(&dataDir, "data", "", "CARD data directory (default: from config)")
	fs.StringVar(&outputPath, "output", "", "Output DuckDB file path")
	fs.StringVar(&outputPath, "o", "", "Output DuckDB file path (shorthand)")
	fs.BoolVar(&breakdowns, "breakdowns", true, "Also compute and store per-class breakdowns")
	fs.IntVar(&workers, "workers", 0, "Worker count for breakdown computation (0 = all CPUs)")
	fs.IntVar(&top, "top", 0, "After export, print the top N drug classes via SQL (0 = skip)")
	fs.BoolVar(&verbose, "verbose", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Export the loaded CARD tables (and optionally per-class breakdowns)
into a DuckDB database for downstream SQL analysis.

Usage:
  cardlens export [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  cardlens export --output card.duckdb
  cardlens export -o card.duckdb --top 10
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if outputPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --output is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	dir := resolveDataDir(dataDir)
	t, err := loadTables(dir, true, logger)
	if err != nil {
		hintMissingData(err, dir)
		return ExitError
	}

	s, err := store.Open(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export database: %v\n", err)
		return ExitError
	}
	defer s.Close()

	if err := s.WriteGenes(t.Genes, t.Resolver); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting gene index: %v\n", err)
		return ExitError
	}
	if err := s.WriteSNPs(t.SNPs, t.Resolver); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting snp table: %v\n", err)
		return ExitError
	}

	if breakdowns {
		classes := distinctDrugClasses(t)
		all := analysis.BreakdownAll(t.Genes, t.SNPs, t.Resolver, classes, workers)
		if err := s.WriteBreakdowns(all); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting breakdowns: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(os.Stderr, "Exported %d gene records, %d snps, %d breakdowns to %s\n",
			len(t.Genes), len(t.SNPs), len(all), outputPath)
	} else {
		fmt.Fprintf(os.Stderr, "Exported %d gene records, %d snps to %s\n",
			len(t.Genes), len(t.SNPs), outputPath)
	}

	if top > 0 {
		entries, err := s.TopDrugClasses(top)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error querying export: %v\n", err)
			return ExitError
		}
		if err := writeCounts("Drug_Class", entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return ExitError
		}
	}

	reportMisses(t.Resolver)
	return ExitSuccess
}

// distinctDrugClasses collects every resolved drug class seen in either
// source, in deterministic order.
func distinctDrugClasses(t *tables) []string {
	result := analysis.Count(t.Genes, analysis.GeneDrugClasses(t.Resolver))
	snpResult := analysis.Count(t.SNPs, analysis.SNPDrugClasses(t.Resolver))
	for key, count := range snpResult {
		result[key] += count
	}
	delete(result, analysis.UnknownKey)

	entries := result.Entries()
	classes := make([]string, 0, len(entries))
	for _, e := range entries {
		classes = append(classes, e.Key)
	}
	return classes
}
