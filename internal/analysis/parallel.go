package analysis

import (
	"runtime"
	"sync"

	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

// workItem is one drug class queued for breakdown computation.
type workItem struct {
	seq   int
	class string
}

// workResult pairs a computed breakdown with its input position.
type workResult struct {
	seq int
	b   Breakdown
}

// BreakdownAll computes breakdowns for several drug classes using a pool of
// workers and returns them in input order. Each BreakdownForClass call is
// independent over read-only inputs, so no synchronization beyond result
// collection is needed. If workers is 0, runtime.NumCPU() is used.
func BreakdownAll(genes []card.GeneRecord, snps []card.SNPRecord, res *ontology.Resolver, classes []string, workers int) []Breakdown {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(classes) {
		workers = len(classes)
	}
	if workers == 0 {
		return nil
	}

	items := make(chan workItem)
	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- workResult{
					seq: item.seq,
					b:   BreakdownForClass(genes, snps, res, item.class),
				}
			}
		}()
	}

	go func() {
		for i, class := range classes {
			items <- workItem{seq: i, class: class}
		}
		close(items)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Breakdown, len(classes))
	for r := range results {
		out[r.seq] = r.b
	}
	return out
}
