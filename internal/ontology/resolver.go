// Package ontology resolves raw ARO category codes to display names and
// provides the canonical string form used as the join key across the
// independently maintained CARD tables.
package ontology

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ainergiz/cardlens/internal/card"
)

// Resolver maps raw category codes to human-readable names. Entries are
// indexed both by accession and by canonicalized name, so values join whether
// a source table stores the code or the display name. Unresolved codes pass
// through unchanged; each miss is counted for diagnostic reporting, never
// dropped.
type Resolver struct {
	byKey  map[string]card.CategoryEntry
	logger *zap.Logger

	mu     sync.Mutex
	misses map[string]int
	total  int
}

// NewResolver builds a resolver from a category table.
func NewResolver(table card.CategoryTable) *Resolver {
	byKey := make(map[string]card.CategoryEntry, 2*len(table))
	for _, entry := range table {
		byKey[Canonicalize(entry.Accession)] = entry
		byKey[Canonicalize(entry.Name)] = entry
	}
	return &Resolver{
		byKey:  byKey,
		logger: zap.NewNop(),
		misses: make(map[string]int),
	}
}

// SetLogger sets the logger for resolution-miss warnings.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Resolve returns the display name for a raw category code. An absent code is
// returned unchanged and recorded as a miss.
func (r *Resolver) Resolve(code string) string {
	if entry, ok := r.Lookup(code); ok {
		return entry.Name
	}

	raw := strings.TrimSpace(code)
	r.mu.Lock()
	r.misses[raw]++
	r.total++
	r.mu.Unlock()

	r.logger.Warn("unresolved category code", zap.String("code", raw))
	return code
}

// Lookup returns the entry for a code without recording a miss. Useful for
// probing whether a caller-supplied label is known at all.
func (r *Resolver) Lookup(code string) (card.CategoryEntry, bool) {
	entry, ok := r.byKey[Canonicalize(code)]
	return entry, ok
}

// Misses returns the total number of resolution misses, counting repeats.
func (r *Resolver) Misses() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// MissedCodes returns the distinct unresolved codes in sorted order.
func (r *Resolver) MissedCodes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes := make([]string, 0, len(r.misses))
	for code := range r.misses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Canonicalize normalizes a label for comparison across source tables:
// case-folded and stripped of surrounding whitespace. The gene index and the
// SNP table are independently maintained and disagree on casing and padding,
// so all joins compare canonical forms.
func Canonicalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
