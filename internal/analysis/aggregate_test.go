package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

func testGenes() []card.GeneRecord {
	return []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"penam"}, ResistanceMechanism: "antibiotic inactivation"},
		{Accession: "ARO:2", DrugClasses: []string{"penam", "cephalosporin"}, ResistanceMechanism: "antibiotic inactivation"},
		{Accession: "ARO:3", DrugClasses: []string{"tetracycline antibiotic"}, ResistanceMechanism: "antibiotic efflux"},
		{Accession: "ARO:4", DrugClasses: nil, ResistanceMechanism: "antibiotic efflux"},
	}
}

func emptyResolver() *ontology.Resolver {
	return ontology.NewResolver(card.CategoryTable{})
}

func TestCount_MultiValuedFields(t *testing.T) {
	result := Count(testGenes(), GeneDrugClasses(emptyResolver()))

	assert.Equal(t, 2, result["penam"], "multi-class record counts once per class")
	assert.Equal(t, 1, result["cephalosporin"])
	assert.Equal(t, 1, result["tetracycline antibiotic"])
	assert.Equal(t, 1, result[UnknownKey], "record without classes lands in the unknown bucket")
}

func TestCount_Reconciliation(t *testing.T) {
	genes := testGenes()
	result := Count(genes, GeneDrugClasses(emptyResolver()))

	// Sum of counts equals the number of (record, key) contribution pairs:
	// 1 + 2 + 1 + 1 (unknown) = 5.
	assert.Equal(t, 5, result.Total())
}

func TestCount_Idempotent(t *testing.T) {
	genes := testGenes()
	keysOf := GeneDrugClasses(emptyResolver())

	first := Count(genes, keysOf)
	second := Count(genes, keysOf)
	assert.Equal(t, first, second)
}

func TestCount_EmptyInput(t *testing.T) {
	result := Count(nil, GeneDrugClasses(emptyResolver()))
	assert.Empty(t, result)
	assert.Zero(t, result.Total())
}

func TestCount_ResolvesKeys(t *testing.T) {
	table := card.CategoryTable{
		"ARO:0000001": {Accession: "ARO:0000001", Name: "penam", CategoryType: "Drug Class"},
	}
	genes := []card.GeneRecord{
		{Accession: "ARO:1", DrugClasses: []string{"ARO:0000001"}},
		{Accession: "ARO:2", DrugClasses: []string{"penam"}},
	}

	result := Count(genes, GeneDrugClasses(ontology.NewResolver(table)))
	assert.Equal(t, 2, result["penam"], "code and name count under one resolved key")
}

func TestTopN_Ordering(t *testing.T) {
	result := Result{"penam": 5, "cephalosporin": 2, "carbapenem": 5, "monobactam": 1}

	entries, err := result.TopN(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Descending by count; equal counts break ties lexicographically.
	assert.Equal(t, Entry{Key: "carbapenem", Count: 5}, entries[0])
	assert.Equal(t, Entry{Key: "penam", Count: 5}, entries[1])
	assert.Equal(t, Entry{Key: "cephalosporin", Count: 2}, entries[2])
}

func TestTopN_FewerKeysThanN(t *testing.T) {
	result := Result{"penam": 3, "cephalosporin": 1}

	entries, err := result.TopN(10)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "M keys with M <= N returns exactly M entries")
}

func TestTopN_EmptyInput(t *testing.T) {
	result := Result{}

	_, err := result.TopN(10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestTopN_NonPositiveN(t *testing.T) {
	result := Result{"penam": 1}

	_, err := result.TopN(0)
	assert.Error(t, err)
}

func TestCount_MechanismKeys(t *testing.T) {
	genes := []card.GeneRecord{
		{Accession: "ARO:1", ResistanceMechanism: "antibiotic efflux; reduced permeability to antibiotic"},
		{Accession: "ARO:2", ResistanceMechanism: "antibiotic efflux"},
	}

	result := Count(genes, GeneMechanisms(emptyResolver()))
	assert.Equal(t, 2, result["antibiotic efflux"])
	assert.Equal(t, 1, result["reduced permeability to antibiotic"])
	assert.Equal(t, 3, result.Total())
}

func TestCount_FamilyKeys(t *testing.T) {
	genes := []card.GeneRecord{
		{Accession: "ARO:1", GeneFamily: "CTX-M beta-lactamase"},
		{Accession: "ARO:2", GeneFamily: "CTX-M beta-lactamase"},
		{Accession: "ARO:3", GeneFamily: ""},
	}

	result := Count(genes, GeneFamilies(emptyResolver()))
	assert.Equal(t, 2, result["CTX-M beta-lactamase"])
	assert.Equal(t, 1, result[UnknownKey])
}

func TestCount_SNPGenes(t *testing.T) {
	snps := []card.SNPRecord{
		{Accession: "ARO:1", GeneShortName: "Ecol_gyrA_FLO"},
		{Accession: "ARO:2", GeneShortName: "Ecol_gyrA_FLO"},
		{Accession: "ARO:3", GeneShortName: "Mtub_rpoB_RIF"},
		{Accession: "ARO:4"},
	}

	result := Count(snps, SNPGenes())
	assert.Equal(t, 2, result["Ecol_gyrA_FLO"])
	assert.Equal(t, 1, result["Mtub_rpoB_RIF"])
	assert.Equal(t, 1, result[UnknownKey])
}
