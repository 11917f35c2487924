package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func runExplore(args []string) int {
	fs := flag.NewFlagSet("explore", flag.ExitOnError)

	var (
		dataDir string
		lines   int
	)

	fs.StringVar(&dataDir, "data", "", "CARD data directory (default: from config)")
	fs.IntVar(&lines, "lines", 5, "Number of preview lines per file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Preview the CARD reference files in the data directory: row counts,
column names, and the first few lines of each file.

Usage:
  cardlens explore [options]

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	dir := resolveDataDir(dataDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		hintMissingData(err, dir)
		return ExitError
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "No files found in %s\n", dir)
		return ExitError
	}

	for _, name := range names {
		previewFile(filepath.Join(dir, name), name, lines)
	}

	return ExitSuccess
}

// previewFile prints the first few lines of a file plus row and column counts
// for tab-delimited content.
func previewFile(path, name string, previewLines int) {
	fmt.Printf("==== %s ====\n", name)

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("  could not open: %v\n\n", err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tabular := strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
	rows := 0
	columns := 0

	for scanner.Scan() {
		line := scanner.Text()
		rows++
		if rows == 1 && tabular {
			columns = len(strings.Split(line, "\t"))
		}
		if rows <= previewLines {
			fmt.Printf("  %s\n", truncateLine(line, 160))
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Printf("  read error: %v\n\n", err)
		return
	}

	if tabular {
		fmt.Printf("  [%d rows x %d columns]\n\n", rows, columns)
	} else {
		fmt.Printf("  [%d lines]\n\n", rows)
	}
}

func truncateLine(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
