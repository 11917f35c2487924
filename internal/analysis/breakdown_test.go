package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

func TestBreakdownForClass_MutationOnly(t *testing.T) {
	// A gyrA-style record: carries the class but via target alteration, which
	// is a mutation of an intrinsic gene, not an acquisition.
	genes := []card.GeneRecord{
		{Accession: "ARO:A1", DrugClasses: []string{"fluoroquinolone"}, ResistanceMechanism: "antibiotic target alteration"},
	}
	snps := []card.SNPRecord{
		{Accession: "ARO:A1", DrugClass: "Fluoroquinolone", Mutation: "gyrA T83I"},
	}

	b := BreakdownForClass(genes, snps, emptyResolver(), "fluoroquinolone")

	assert.Equal(t, 0, b.Acquired)
	assert.Equal(t, 1, b.Mutation)
	assert.Equal(t, 1, b.Total)
	assert.False(t, b.NoData, "the class matched records, so this is real data")
}

func TestBreakdownForClass_CanonicalizedJoin(t *testing.T) {
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"Fluoroquinolone "}, ResistanceMechanism: "antibiotic inactivation"},
	}
	snps := []card.SNPRecord{
		{Accession: "ARO:2", DrugClass: "fluoroquinolone"},
	}

	// Case and padding differences between the two sources join to one bucket.
	b := BreakdownForClass(genes, snps, emptyResolver(), "FLUOROQUINOLONE")
	assert.Equal(t, 1, b.Acquired)
	assert.Equal(t, 1, b.Mutation)
	assert.Equal(t, 2, b.Total)
}

func TestBreakdownForClass_NoData(t *testing.T) {
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"penam"}, ResistanceMechanism: "antibiotic inactivation"},
	}
	snps := []card.SNPRecord{
		{Accession: "ARO:2", DrugClass: "penam"},
	}

	b := BreakdownForClass(genes, snps, emptyResolver(), "glycopeptide antibiotic")

	assert.True(t, b.NoData)
	assert.Zero(t, b.Acquired)
	assert.Zero(t, b.Mutation)
	assert.Zero(t, b.Total)
}

func TestBreakdownForClass_TrueZeroIsNotNoData(t *testing.T) {
	// The class is present in the gene index but only via a non-acquisition
	// mechanism: all-zero acquired count, yet not NoData.
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"rifamycin antibiotic"}, ResistanceMechanism: "antibiotic target alteration"},
	}

	b := BreakdownForClass(genes, nil, emptyResolver(), "rifamycin antibiotic")

	assert.False(t, b.NoData)
	assert.Zero(t, b.Acquired)
	assert.Zero(t, b.Total)
}

func TestBreakdownForClass_ResolvesCodes(t *testing.T) {
	table := card.CategoryTable{
		"ARO:0000001": {Accession: "ARO:0000001", Name: "fluoroquinolone antibiotic", CategoryType: "Drug Class"},
	}
	res := ontology.NewResolver(table)

	// Gene index stores the code, SNP table the display name; the target is
	// given as the code. All three meet on the resolved canonical form.
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"ARO:0000001"}, ResistanceMechanism: "antibiotic efflux"},
	}
	snps := []card.SNPRecord{
		{Accession: "ARO:2", DrugClass: "Fluoroquinolone Antibiotic"},
	}

	b := BreakdownForClass(genes, snps, res, "ARO:0000001")
	assert.Equal(t, 1, b.Acquired)
	assert.Equal(t, 1, b.Mutation)
	assert.Equal(t, 2, b.Total)
	assert.False(t, b.NoData)
}

func TestBreakdownForClass_MultiClassGene(t *testing.T) {
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"penam", "cephalosporin"}, ResistanceMechanism: "antibiotic inactivation"},
	}

	// The record counts toward each of its classes, once per class queried.
	penam := BreakdownForClass(genes, nil, emptyResolver(), "penam")
	ceph := BreakdownForClass(genes, nil, emptyResolver(), "cephalosporin")
	assert.Equal(t, 1, penam.Acquired)
	assert.Equal(t, 1, ceph.Acquired)
}

func TestIsAcquisitionMechanism(t *testing.T) {
	tests := []struct {
		mechanism string
		want      bool
	}{
		{"antibiotic inactivation", true},
		{"Antibiotic Efflux", true},
		{"antibiotic target protection", true},
		{"antibiotic target replacement", true},
		{"antibiotic target alteration", false},
		{"reduced permeability to antibiotic", false},
		{"antibiotic target alteration; antibiotic efflux", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mechanism, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAcquisitionMechanism(tt.mechanism))
		})
	}
}
