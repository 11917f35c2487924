package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

// CARD reference file names inside the data directory.
const (
	geneIndexFile  = "aro_index.tsv"
	categoriesFile = "aro_categories.tsv"
	snpsFile       = "snps.txt"
)

// defaultDataDir returns ~/.cardlens/data.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".cardlens", "data")
}

// resolveDataDir picks the data directory: flag value if set, otherwise the
// configured default.
func resolveDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString("data.dir")
}

// tables holds one loaded snapshot of the CARD reference data. Everything is
// read-only for the duration of a run.
type tables struct {
	Genes    []card.GeneRecord
	SNPs     []card.SNPRecord
	Resolver *ontology.Resolver
}

// loadTables loads the gene index, the category dictionary, and the SNP table
// from dataDir and builds the resolver. The SNP table is optional for
// commands that only aggregate the gene index; pass withSNPs=false to skip it.
func loadTables(dataDir string, withSNPs bool, logger *zap.Logger) (*tables, error) {
	categories, err := card.LoadCategories(filepath.Join(dataDir, categoriesFile))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", categoriesFile, err)
	}

	genes, err := card.LoadGeneIndex(filepath.Join(dataDir, geneIndexFile))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", geneIndexFile, err)
	}

	t := &tables{Genes: genes}

	if withSNPs {
		snps, err := card.LoadSNPs(filepath.Join(dataDir, snpsFile))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", snpsFile, err)
		}
		t.SNPs = snps
	}

	t.Resolver = ontology.NewResolver(categories)
	t.Resolver.SetLogger(logger)

	logger.Info("loaded CARD reference data",
		zap.String("dir", dataDir),
		zap.Int("genes", len(t.Genes)),
		zap.Int("categories", len(categories)),
		zap.Int("snps", len(t.SNPs)))

	return t, nil
}

// reportMisses prints the resolution-miss diagnostic after an analysis.
func reportMisses(res *ontology.Resolver) {
	if res.Misses() == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %d category resolution misses (%d distinct codes passed through unresolved)\n",
		res.Misses(), len(res.MissedCodes()))
}

// hintMissingData points at the download command when the data dir is empty.
func hintMissingData(err error, dataDir string) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Hint: No CARD data found in %s\n", dataDir)
		fmt.Fprintf(os.Stderr, "Hint: Download the reference data with: cardlens download\n")
	}
}
