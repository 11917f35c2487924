// Package analysis implements the aggregation and cross-source breakdown
// logic over loaded CARD records. All entry points are pure functions over
// immutable inputs; nothing here holds state across calls.
package analysis

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UnknownKey groups records whose key value is missing or empty. Keeping them
// in an explicit bucket keeps totals reconcilable against the input size.
const UnknownKey = "unknown"

// ErrEmptyInput is returned when a top-N selection is requested over an empty
// input sequence, where the result would be ambiguous.
var ErrEmptyInput = errors.New("empty input")

// Result maps a group key to its occurrence count.
type Result map[string]int

// Entry is one key of a Result in ordered output.
type Entry struct {
	Key   string
	Count int
}

// Count tallies records per key. keysOf yields zero or more keys per record;
// each value increments its own key independently, so a record with several
// drug classes contributes once per class. Records yielding no keys (or blank
// ones) land in the UnknownKey bucket. An empty input produces an empty
// Result.
func Count[T any](records []T, keysOf func(T) []string) Result {
	result := make(Result)
	for _, rec := range records {
		keys := keysOf(rec)
		if len(keys) == 0 {
			result[UnknownKey]++
			continue
		}
		for _, key := range keys {
			if strings.TrimSpace(key) == "" {
				result[UnknownKey]++
				continue
			}
			result[key]++
		}
	}
	return result
}

// Total returns the sum of all counts: the number of (record, key)
// contribution pairs that went into the result.
func (r Result) Total() int {
	total := 0
	for _, c := range r {
		total += c
	}
	return total
}

// Entries returns all keys ordered by descending count, ties broken by
// lexicographic key order so output is deterministic.
func (r Result) Entries() []Entry {
	entries := make([]Entry, 0, len(r))
	for key, count := range r {
		entries = append(entries, Entry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// TopN returns the n highest-count entries in descending order. A result with
// fewer than n keys returns all of them. Requesting a selection over an empty
// result fails with ErrEmptyInput.
func (r Result) TopN(n int) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top-n selection: n must be positive, got %d", n)
	}
	if len(r) == 0 {
		return nil, fmt.Errorf("top-%d selection: %w", n, ErrEmptyInput)
	}

	entries := r.Entries()
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
