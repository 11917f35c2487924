package card

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Gene index column names (aro_index.tsv).
const (
	ColAROAccession        = "ARO Accession"
	ColAROName             = "ARO Name"
	ColCARDShortName       = "CARD Short Name"
	ColGeneFamily          = "AMR Gene Family"
	ColProteinAccession    = "Protein Accession"
	ColDrugClass           = "Drug Class"
	ColResistanceMechanism = "Resistance Mechanism"
)

// indexColumns holds the indices of the gene index columns we consume.
type indexColumns struct {
	accession int
	name      int
	shortName int
	family    int
	protein   int
	drugClass int
	mechanism int
}

// LoadGeneIndex reads aro_index.tsv into memory. Supports plain and gzipped
// (.tsv.gz) files.
func LoadGeneIndex(path string) ([]GeneRecord, error) {
	r, closer, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("open gene index: %w", err)
	}
	defer closer()

	return parseGeneIndex(r)
}

// parseGeneIndex parses the tab-delimited gene index content.
func parseGeneIndex(r io.Reader) ([]GeneRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	cols, lineNum, err := parseIndexHeader(scanner)
	if err != nil {
		return nil, err
	}

	var records []GeneRecord
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		accession := field(fields, cols.accession)
		if accession == "" {
			// Rows without an accession cannot be joined to anything.
			continue
		}

		records = append(records, GeneRecord{
			Accession:           accession,
			Name:                field(fields, cols.name),
			ShortName:           field(fields, cols.shortName),
			GeneFamily:          field(fields, cols.family),
			ProteinAccession:    field(fields, cols.protein),
			DrugClasses:         SplitMulti(field(fields, cols.drugClass)),
			ResistanceMechanism: field(fields, cols.mechanism),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gene index: %w", err)
	}

	return records, nil
}

// parseIndexHeader locates the header line and resolves column indices.
func parseIndexHeader(scanner *bufio.Scanner) (indexColumns, int, error) {
	cols := indexColumns{
		accession: -1,
		name:      -1,
		shortName: -1,
		family:    -1,
		protein:   -1,
		drugClass: -1,
		mechanism: -1,
	}

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		for i, col := range strings.Split(line, "\t") {
			switch col {
			case ColAROAccession:
				cols.accession = i
			case ColAROName:
				cols.name = i
			case ColCARDShortName:
				cols.shortName = i
			case ColGeneFamily:
				cols.family = i
			case ColProteinAccession:
				cols.protein = i
			case ColDrugClass:
				cols.drugClass = i
			case ColResistanceMechanism:
				cols.mechanism = i
			}
		}

		if cols.accession == -1 {
			return cols, lineNum, &ParseError{Line: lineNum, Message: fmt.Sprintf("missing required column %q", ColAROAccession)}
		}
		if cols.drugClass == -1 {
			return cols, lineNum, &ParseError{Line: lineNum, Message: fmt.Sprintf("missing required column %q", ColDrugClass)}
		}
		if cols.mechanism == -1 {
			return cols, lineNum, &ParseError{Line: lineNum, Message: fmt.Sprintf("missing required column %q", ColResistanceMechanism)}
		}
		return cols, lineNum, nil
	}

	if err := scanner.Err(); err != nil {
		return cols, lineNum, fmt.Errorf("read header: %w", err)
	}
	return cols, lineNum, &ParseError{Line: lineNum, Message: "no header line found"}
}

// field returns the value at index i, or "" when the column is absent or the
// row is short. The SNP table in particular has rows with trailing columns
// missing.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// openMaybeGzip opens a file and transparently unwraps gzip content,
// detected by the magic bytes rather than the extension.
func openMaybeGzip(path string) (io.Reader, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	buf := make([]byte, 2)
	n, _ := file.Read(buf)
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("seek: %w", err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return gz, func() { gz.Close(); file.Close() }, nil
	}

	return file, func() { file.Close() }, nil
}
