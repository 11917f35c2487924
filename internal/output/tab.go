// Package output provides tab-delimited result writers.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ainergiz/cardlens/internal/analysis"
)

// CountWriter writes aggregation entries as a tab-delimited table.
type CountWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewCountWriter creates a writer for one aggregation dimension. The label
// becomes the first column header, e.g. "Drug_Class".
func NewCountWriter(w io.Writer, label string) *CountWriter {
	return &CountWriter{
		w:       bufio.NewWriter(w),
		columns: []string{"#" + label, "Count"},
	}
}

// WriteHeader writes the header line.
func (cw *CountWriter) WriteHeader() error {
	_, err := cw.w.WriteString(strings.Join(cw.columns, "\t") + "\n")
	return err
}

// Write writes a single entry.
func (cw *CountWriter) Write(e analysis.Entry) error {
	_, err := fmt.Fprintf(cw.w, "%s\t%d\n", e.Key, e.Count)
	return err
}

// WriteAll writes entries in the order given.
func (cw *CountWriter) WriteAll(entries []analysis.Entry) error {
	for _, e := range entries {
		if err := cw.Write(e); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered output.
func (cw *CountWriter) Flush() error {
	return cw.w.Flush()
}

// BreakdownWriter writes acquired-vs-mutation breakdowns as a tab-delimited
// table. The Status column distinguishes no_data from a true zero.
type BreakdownWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewBreakdownWriter creates a breakdown table writer.
func NewBreakdownWriter(w io.Writer) *BreakdownWriter {
	return &BreakdownWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Drug_Class",
			"Acquired_Gene",
			"Point_Mutation",
			"Total",
			"Status",
		},
	}
}

// WriteHeader writes the header line.
func (bw *BreakdownWriter) WriteHeader() error {
	_, err := bw.w.WriteString(strings.Join(bw.columns, "\t") + "\n")
	return err
}

// Write writes a single breakdown row.
func (bw *BreakdownWriter) Write(b analysis.Breakdown) error {
	status := "ok"
	if b.NoData {
		status = "no_data"
	}
	_, err := fmt.Fprintf(bw.w, "%s\t%d\t%d\t%d\t%s\n", b.DrugClass, b.Acquired, b.Mutation, b.Total, status)
	return err
}

// Flush flushes buffered output.
func (bw *BreakdownWriter) Flush() error {
	return bw.w.Flush()
}
