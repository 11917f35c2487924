package analysis

import (
	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

// Key extractors for the dimensions the CLI reports on. Values run through
// the resolver so raw codes and display names count under one key.

// GeneDrugClasses keys gene records by their resolved drug classes.
func GeneDrugClasses(res *ontology.Resolver) func(card.GeneRecord) []string {
	return func(g card.GeneRecord) []string {
		keys := make([]string, 0, len(g.DrugClasses))
		for _, dc := range g.DrugClasses {
			keys = append(keys, res.Resolve(dc))
		}
		return keys
	}
}

// GeneMechanisms keys gene records by their resolved resistance mechanisms.
// The mechanism column is semicolon-separated like the drug class column.
func GeneMechanisms(res *ontology.Resolver) func(card.GeneRecord) []string {
	return func(g card.GeneRecord) []string {
		parts := card.SplitMulti(g.ResistanceMechanism)
		keys := make([]string, 0, len(parts))
		for _, m := range parts {
			keys = append(keys, res.Resolve(m))
		}
		return keys
	}
}

// GeneFamilies keys gene records by their resolved gene family.
func GeneFamilies(res *ontology.Resolver) func(card.GeneRecord) []string {
	return func(g card.GeneRecord) []string {
		parts := card.SplitMulti(g.GeneFamily)
		keys := make([]string, 0, len(parts))
		for _, f := range parts {
			keys = append(keys, res.Resolve(f))
		}
		return keys
	}
}

// SNPGenes keys SNP records by the short name of the mutated gene.
func SNPGenes() func(card.SNPRecord) []string {
	return func(s card.SNPRecord) []string {
		if s.GeneShortName == "" {
			return nil
		}
		return []string{s.GeneShortName}
	}
}

// SNPDrugClasses keys SNP records by their resolved drug class.
func SNPDrugClasses(res *ontology.Resolver) func(card.SNPRecord) []string {
	return func(s card.SNPRecord) []string {
		if s.DrugClass == "" {
			return nil
		}
		return []string{res.Resolve(s.DrugClass)}
	}
}
