package main

import (
	"archive/tar"
	"compress/bzip2"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CARD data archive URL. The archive bundles aro_index.tsv,
// aro_categories.tsv, snps.txt and the sequence FASTA files.
const cardDataURL = "https://card.mcmaster.ca/latest/data"

// Files extracted from the archive. Everything else (FASTA sequences, JSON
// ontology dumps) is skipped; the analysis only needs the tabular data.
var wantedDataFiles = map[string]bool{
	"aro_index.tsv":      true,
	"aro_categories.tsv": true,
	"snps.txt":           true,
}

func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	var (
		outputDir string
		keepAll   bool
	)

	fs.StringVar(&outputDir, "output", "", "Output directory (default: ~/.cardlens/data)")
	fs.BoolVar(&keepAll, "all", false, "Extract every file from the archive, not just the tabular data")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Download the CARD reference data archive and extract the tabular files.

Usage:
  cardlens download [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Download into the default data directory
  cardlens download

  # Download into a custom directory
  cardlens download --output /data/card

Files extracted:
  - aro_index.tsv       (gene index)
  - aro_categories.tsv  (ARO category dictionary)
  - snps.txt            (resistance-conferring point mutations)

After downloading, cardlens commands find the data automatically.
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if outputDir == "" {
		outputDir = defaultDataDir()
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create directory %s: %v\n", outputDir, err)
		return ExitError
	}

	fmt.Printf("Downloading CARD reference data...\n")
	fmt.Printf("Destination: %s\n\n", outputDir)

	archivePath := filepath.Join(outputDir, "card-data.tar.bz2")
	if err := downloadFile(cardDataURL, archivePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error downloading archive: %v\n", err)
		return ExitError
	}

	extracted, err := extractArchive(archivePath, outputDir, keepAll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting archive: %v\n", err)
		return ExitError
	}

	fmt.Printf("\nExtracted %d files.\n", extracted)
	fmt.Printf("Download complete!\n")
	fmt.Printf("To see the top drug classes, run:\n")
	fmt.Printf("  cardlens classes\n")

	return ExitSuccess
}

// downloadFile downloads a file from URL to the destination path with progress.
func downloadFile(url, destPath string) error {
	if info, err := os.Stat(destPath); err == nil {
		fmt.Printf("  %s already exists (%s), skipping\n", filepath.Base(destPath), formatSize(info.Size()))
		return nil
	}

	fmt.Printf("  Downloading %s...\n", filepath.Base(destPath))

	client := &http.Client{
		Timeout: 30 * time.Minute, // Long timeout for large files
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	var downloaded int64
	pw := &progressWriter{
		total:      resp.ContentLength,
		downloaded: &downloaded,
		lastPrint:  time.Now(),
	}

	_, err = io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()

	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	fmt.Printf("    Done: %s\n", formatSize(downloaded))
	return nil
}

// extractArchive unpacks the tar.bz2 archive into destDir. Unless keepAll is
// set, only the tabular reference files are written.
func extractArchive(archivePath, destDir string, keepAll bool) (int, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	tr := tar.NewReader(bzip2.NewReader(f))
	extracted := 0

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return extracted, fmt.Errorf("read archive: %w", err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.Base(hdr.Name)
		if !keepAll && !wantedDataFiles[name] {
			continue
		}
		// Flatten the archive layout; basenames only, no path traversal.
		if strings.Contains(name, "..") {
			continue
		}

		destPath := filepath.Join(destDir, name)
		out, err := os.Create(destPath)
		if err != nil {
			return extracted, fmt.Errorf("create %s: %w", name, err)
		}

		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return extracted, fmt.Errorf("extract %s: %w", name, err)
		}
		out.Close()

		fmt.Printf("  Extracted %s\n", name)
		extracted++
	}

	return extracted, nil
}

// progressWriter tracks download progress.
type progressWriter struct {
	total      int64
	downloaded *int64
	lastPrint  time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	*pw.downloaded += int64(n)

	// Print progress every second
	if time.Since(pw.lastPrint) > time.Second {
		if pw.total > 0 {
			pct := float64(*pw.downloaded) / float64(pw.total) * 100
			fmt.Printf("\r    Progress: %s / %s (%.1f%%)  ",
				formatSize(*pw.downloaded), formatSize(pw.total), pct)
		} else {
			fmt.Printf("\r    Progress: %s  ", formatSize(*pw.downloaded))
		}
		pw.lastPrint = time.Now()
	}

	return n, nil
}

// formatSize formats a byte count for humans.
func formatSize(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
