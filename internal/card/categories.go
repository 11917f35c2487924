package card

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Category dictionary column names (aro_categories.tsv).
const (
	ColCategoryAccession = "ARO Accession"
	ColCategoryName      = "ARO Name"
	ColCategoryType      = "ARO Category"
)

// LoadCategories reads aro_categories.tsv into a lookup table keyed by
// accession. Later rows win on duplicate accessions.
func LoadCategories(path string) (CategoryTable, error) {
	r, closer, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("open category dictionary: %w", err)
	}
	defer closer()

	return parseCategories(r)
}

// parseCategories parses the tab-delimited dictionary content.
func parseCategories(r io.Reader) (CategoryTable, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	accessionCol, nameCol, typeCol := -1, -1, -1
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		for i, col := range strings.Split(line, "\t") {
			switch col {
			case ColCategoryAccession:
				accessionCol = i
			case ColCategoryName:
				nameCol = i
			case ColCategoryType:
				typeCol = i
			}
		}

		if accessionCol == -1 || nameCol == -1 {
			return nil, &ParseError{Line: lineNum, Message: fmt.Sprintf("missing required columns %q and %q", ColCategoryAccession, ColCategoryName)}
		}
		break
	}

	if accessionCol == -1 {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, &ParseError{Line: lineNum, Message: "no header line found"}
	}

	table := make(CategoryTable)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		accession := field(fields, accessionCol)
		name := field(fields, nameCol)
		if accession == "" || name == "" {
			continue
		}

		table[accession] = CategoryEntry{
			Accession:    accession,
			Name:         name,
			CategoryType: field(fields, typeCol),
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read category dictionary: %w", err)
	}

	return table, nil
}
