package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainergiz/cardlens/internal/card"
)

func TestBreakdownAll_MatchesSerial(t *testing.T) {
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"penam"}, ResistanceMechanism: "antibiotic inactivation"},
		{Accession: "ARO:2", DrugClasses: []string{"penam", "cephalosporin"}, ResistanceMechanism: "antibiotic inactivation"},
		{Accession: "ARO:3", DrugClasses: []string{"fluoroquinolone antibiotic"}, ResistanceMechanism: "antibiotic target alteration"},
	}
	snps := []card.SNPRecord{
		{Accession: "ARO:3", DrugClass: "fluoroquinolone antibiotic"},
		{Accession: "ARO:4", DrugClass: "rifamycin antibiotic"},
	}
	classes := []string{"penam", "cephalosporin", "fluoroquinolone antibiotic", "rifamycin antibiotic", "no such class"}

	res := emptyResolver()
	parallel := BreakdownAll(genes, snps, res, classes, 4)
	require.Len(t, parallel, len(classes))

	for i, class := range classes {
		serial := BreakdownForClass(genes, snps, res, class)
		assert.Equal(t, serial, parallel[i], "class %q", class)
		assert.Equal(t, class, parallel[i].DrugClass, "results come back in input order")
	}

	assert.True(t, parallel[4].NoData)
}

func TestBreakdownAll_DefaultWorkers(t *testing.T) {
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"penam"}, ResistanceMechanism: "antibiotic inactivation"},
	}

	out := BreakdownAll(genes, nil, emptyResolver(), []string{"penam"}, 0)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Acquired)
}

func TestBreakdownAll_NoClasses(t *testing.T) {
	assert.Empty(t, BreakdownAll(nil, nil, emptyResolver(), nil, 0))
}
