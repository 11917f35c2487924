package analysis

import (
	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

// Breakdown partitions the resistance burden for one drug class into
// acquired-gene and point-mutation counts. NoData distinguishes "this class
// matched no records in either source" from a true zero, so callers can tell
// an unrecognized class apart from absence of acquisition-based resistance.
type Breakdown struct {
	DrugClass string
	Acquired  int
	Mutation  int
	Total     int
	NoData    bool
}

// Mechanisms conferred by acquiring a resistance gene, as opposed to mutating
// an intrinsic one. Target alteration and reduced permeability arise from
// mutations of existing genes and are deliberately absent.
var acquisitionMechanisms = map[string]bool{
	"antibiotic inactivation":       true,
	"antibiotic target protection":  true,
	"antibiotic target replacement": true,
	"antibiotic efflux":             true,
}

// IsAcquisitionMechanism reports whether a resistance mechanism value
// indicates gene acquisition. Multi-valued mechanism fields match if any part
// does.
func IsAcquisitionMechanism(mechanism string) bool {
	for _, m := range card.SplitMulti(mechanism) {
		if acquisitionMechanisms[ontology.Canonicalize(m)] {
			return true
		}
	}
	return false
}

// BreakdownForClass computes the acquired-vs-mutation breakdown for one drug
// class. All drug-class labels from both sources are resolved and
// canonicalized before comparison; the two tables are independently
// maintained and disagree on casing and padding.
func BreakdownForClass(genes []card.GeneRecord, snps []card.SNPRecord, res *ontology.Resolver, drugClass string) Breakdown {
	b := Breakdown{DrugClass: drugClass}

	target := ontology.Canonicalize(drugClass)
	if entry, ok := res.Lookup(drugClass); ok {
		target = ontology.Canonicalize(entry.Name)
	}

	matched := false

	for _, g := range genes {
		hit := false
		for _, dc := range g.DrugClasses {
			if ontology.Canonicalize(res.Resolve(dc)) == target {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		matched = true
		if IsAcquisitionMechanism(g.ResistanceMechanism) {
			b.Acquired++
		}
	}

	for _, s := range snps {
		if s.DrugClass == "" {
			continue
		}
		if ontology.Canonicalize(res.Resolve(s.DrugClass)) == target {
			matched = true
			b.Mutation++
		}
	}

	b.Total = b.Acquired + b.Mutation
	b.NoData = !matched
	return b
}
