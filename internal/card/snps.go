package card

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SNP table column names (snps.txt).
const (
	ColSNPAccession = "Accession"
	ColSNPShortName = "CARD Short Name"
	ColSNPDrugClass = "Drug Class"
	ColSNPMutation  = "Mutations"
)

// LoadSNPs reads snps.txt into memory. The file has an irregular trailing
// structure (variable column counts past the accession), so rows shorter than
// the header are accepted and missing fields come back empty rather than
// failing the load.
func LoadSNPs(path string) ([]SNPRecord, error) {
	r, closer, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("open snp table: %w", err)
	}
	defer closer()

	return parseSNPs(r)
}

// parseSNPs parses the tab-delimited SNP table content.
func parseSNPs(r io.Reader) ([]SNPRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	accessionCol, shortNameCol, drugClassCol, mutationCol := -1, -1, -1, -1
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		for i, col := range strings.Split(line, "\t") {
			switch col {
			case ColSNPAccession:
				accessionCol = i
			case ColSNPShortName:
				shortNameCol = i
			case ColSNPDrugClass:
				drugClassCol = i
			case ColSNPMutation:
				mutationCol = i
			}
		}

		if accessionCol == -1 {
			return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("missing required column %q", ColSNPAccession)}
		}
		break
	}

	if accessionCol == -1 {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, &ParseError{Line: lineNum, Message: "no header line found"}
	}

	var records []SNPRecord
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		accession := field(fields, accessionCol)
		if accession == "" {
			continue
		}

		records = append(records, SNPRecord{
			Accession:     NormalizeAccession(accession),
			GeneShortName: field(fields, shortNameCol),
			DrugClass:     field(fields, drugClassCol),
			Mutation:      field(fields, mutationCol),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read snp table: %w", err)
	}

	return records, nil
}
