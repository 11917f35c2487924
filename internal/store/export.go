package store

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/ainergiz/cardlens/internal/analysis"
	"github.com/ainergiz/cardlens/internal/card"
	"github.com/ainergiz/cardlens/internal/ontology"
)

// WriteGenes batch-inserts gene records using the Appender API, one row per
// (record, resolved drug class) pair. Records without any drug class get a
// single row under the unknown bucket so totals stay reconcilable.
func (s *Store) WriteGenes(genes []card.GeneRecord, res *ontology.Resolver) error {
	if len(genes) == 0 {
		return nil
	}

	appender, closeAppender, err := s.newAppender("gene_classes")
	if err != nil {
		return err
	}
	defer closeAppender()

	for _, g := range genes {
		classes := make([]string, 0, len(g.DrugClasses))
		for _, dc := range g.DrugClasses {
			classes = append(classes, res.Resolve(dc))
		}
		if len(classes) == 0 {
			classes = []string{analysis.UnknownKey}
		}

		for _, class := range classes {
			if err := appender.AppendRow(
				g.Accession, g.Name, g.ShortName, g.GeneFamily,
				class, g.ResistanceMechanism,
			); err != nil {
				return fmt.Errorf("append gene row: %w", err)
			}
		}
	}

	return appender.Flush()
}

// WriteSNPs batch-inserts SNP records using the Appender API.
func (s *Store) WriteSNPs(snps []card.SNPRecord, res *ontology.Resolver) error {
	if len(snps) == 0 {
		return nil
	}

	appender, closeAppender, err := s.newAppender("snps")
	if err != nil {
		return err
	}
	defer closeAppender()

	for _, snp := range snps {
		class := snp.DrugClass
		if class != "" {
			class = res.Resolve(class)
		}
		if err := appender.AppendRow(snp.Accession, snp.GeneShortName, class, snp.Mutation); err != nil {
			return fmt.Errorf("append snp row: %w", err)
		}
	}

	return appender.Flush()
}

// WriteBreakdowns upserts computed breakdowns.
func (s *Store) WriteBreakdowns(breakdowns []analysis.Breakdown) error {
	for _, b := range breakdowns {
		_, err := s.db.Exec(
			`INSERT OR REPLACE INTO breakdowns (drug_class, acquired, mutation, total, no_data)
			 VALUES (?, ?, ?, ?, ?)`,
			b.DrugClass, b.Acquired, b.Mutation, b.Total, b.NoData,
		)
		if err != nil {
			return fmt.Errorf("insert breakdown %q: %w", b.DrugClass, err)
		}
	}
	return nil
}

// TopDrugClasses queries the exploded gene table for the n most frequent
// drug classes. The ordering matches analysis.Result.TopN: descending count,
// ties broken by class name.
func (s *Store) TopDrugClasses(n int) ([]analysis.Entry, error) {
	rows, err := s.db.Query(
		`SELECT drug_class, COUNT(*) AS n
		 FROM gene_classes
		 GROUP BY drug_class
		 ORDER BY n DESC, drug_class ASC
		 LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top drug classes: %w", err)
	}
	defer rows.Close()

	var entries []analysis.Entry
	for rows.Next() {
		var e analysis.Entry
		if err := rows.Scan(&e.Key, &e.Count); err != nil {
			return nil, fmt.Errorf("scan drug class row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// newAppender creates a DuckDB appender for a table on a dedicated connection.
func (s *Store) newAppender(table string) (*goduckdb.Appender, func(), error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create appender: %w", err)
	}

	return appender, func() {
		appender.Close()
		conn.Close()
	}, nil
}
