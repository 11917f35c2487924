// Package card provides loading of CARD reference tables: the gene index
// (aro_index.tsv), the ARO category dictionary (aro_categories.tsv), and the
// resistance-conferring SNP table (snps.txt).
package card

import (
	"fmt"
	"strings"
)

// GeneRecord is one row of the gene index. A record may confer resistance to
// several drug classes. Records are read-only snapshots for the duration of
// an analysis run.
type GeneRecord struct {
	Accession           string // "ARO:3003830"
	Name                string
	ShortName           string
	GeneFamily          string
	ProteinAccession    string
	DrugClasses         []string
	ResistanceMechanism string
}

// CategoryEntry is one row of the ARO category dictionary.
type CategoryEntry struct {
	Accession    string
	Name         string
	CategoryType string // "Drug Class", "Resistance Mechanism", "AMR Gene Family", ...
}

// CategoryTable maps an ARO accession to its category entry.
type CategoryTable map[string]CategoryEntry

// SNPRecord is one row of the SNP table. The accession is a soft reference to
// a gene record; the two tables are independently maintained, so the link is
// looked up by key rather than held as a pointer.
type SNPRecord struct {
	Accession     string // normalized to the "ARO:" prefixed form
	GeneShortName string
	DrugClass     string
	Mutation      string
}

// SplitMulti splits a semicolon-separated field value and trims the
// surrounding whitespace of each part. Empty parts are dropped.
func SplitMulti(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeAccession prepends the "ARO:" prefix to bare numeric accessions.
// The SNP table stores bare numbers while the gene index uses the prefixed
// form; joins happen on the prefixed form.
func NormalizeAccession(a string) string {
	a = strings.TrimSpace(a)
	if a == "" || strings.HasPrefix(a, "ARO:") {
		return a
	}
	return "ARO:" + a
}

// ParseError reports a malformed line in a CARD reference file.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("card parse error at line %d: %s", e.Line, e.Message)
}
