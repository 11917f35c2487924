package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainergiz/cardlens/internal/analysis"
	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteGenesAndTopDrugClasses(t *testing.T) {
	s := openInMemory(t)
	res := ontology.NewResolver(card.CategoryTable{})

	genes := []card.GeneRecord{
		{Accession: "ARO:1", Name: "blaZ", DrugClasses: []string{"penam"}, ResistanceMechanism: "antibiotic inactivation"},
		{Accession: "ARO:2", Name: "tet(M)", DrugClasses: []string{"tetracycline antibiotic"}, ResistanceMechanism: "antibiotic target protection"},
		{Accession: "ARO:3", Name: "CTX-M-15", DrugClasses: []string{"penam", "cephalosporin"}, ResistanceMechanism: "antibiotic inactivation"},
		{Accession: "ARO:4", Name: "orphan"},
	}

	require.NoError(t, s.WriteGenes(genes, res))

	entries, err := s.TopDrugClasses(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, analysis.Entry{Key: "penam", Count: 2}, entries[0])

	// Ties between count-1 classes break on name; "cephalosporin" sorts
	// before "tetracycline antibiotic" and "unknown".
	assert.Equal(t, analysis.Entry{Key: "cephalosporin", Count: 1}, entries[1])
}

func TestWriteSNPs(t *testing.T) {
	s := openInMemory(t)
	res := ontology.NewResolver(card.CategoryTable{})

	snps := []card.SNPRecord{
		{Accession: "ARO:3003830", GeneShortName: "Ecol_gyrA_FLO", DrugClass: "fluoroquinolone antibiotic", Mutation: "S83L"},
		{Accession: "ARO:3003392", GeneShortName: "Mtub_rpoB_RIF", Mutation: "S450L"},
	}

	require.NoError(t, s.WriteSNPs(snps, res))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM snps").Scan(&count))
	assert.Equal(t, 2, count)

	var gene string
	require.NoError(t, s.DB().QueryRow(
		"SELECT gene FROM snps WHERE accession = 'ARO:3003830'").Scan(&gene))
	assert.Equal(t, "Ecol_gyrA_FLO", gene)
}

func TestWriteBreakdowns(t *testing.T) {
	s := openInMemory(t)

	breakdowns := []analysis.Breakdown{
		{DrugClass: "fluoroquinolone antibiotic", Acquired: 3, Mutation: 7, Total: 10},
		{DrugClass: "unheard-of antibiotic", NoData: true},
	}
	require.NoError(t, s.WriteBreakdowns(breakdowns))

	// Re-writing the same class replaces the row instead of duplicating it.
	breakdowns[0].Acquired = 4
	breakdowns[0].Total = 11
	require.NoError(t, s.WriteBreakdowns(breakdowns[:1]))

	var acquired, total int
	var noData bool
	require.NoError(t, s.DB().QueryRow(
		"SELECT acquired, total, no_data FROM breakdowns WHERE drug_class = 'fluoroquinolone antibiotic'").
		Scan(&acquired, &total, &noData))
	assert.Equal(t, 4, acquired)
	assert.Equal(t, 11, total)
	assert.False(t, noData)

	require.NoError(t, s.DB().QueryRow(
		"SELECT no_data FROM breakdowns WHERE drug_class = 'unheard-of antibiotic'").Scan(&noData))
	assert.True(t, noData)
}

func TestTopDrugClasses_EmptyTable(t *testing.T) {
	s := openInMemory(t)

	entries, err := s.TopDrugClasses(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
