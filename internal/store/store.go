// Package store persists loaded CARD tables and computed breakdowns into a
// DuckDB database so results can be queried with SQL downstream. The database
// is a convenience artifact of one analysis run, not a system of record.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for exported analysis data.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist. Gene records are stored
// exploded, one row per (accession, drug class) pair, so class-level GROUP BY
// queries work without splitting multi-valued fields in SQL.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS gene_classes (
			accession VARCHAR,
			gene_name VARCHAR,
			short_name VARCHAR,
			gene_family VARCHAR,
			drug_class VARCHAR,
			resistance_mechanism VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS snps (
			accession VARCHAR,
			gene VARCHAR,
			drug_class VARCHAR,
			mutation VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS breakdowns (
			drug_class VARCHAR,
			acquired BIGINT,
			mutation BIGINT,
			total BIGINT,
			no_data BOOLEAN,
			PRIMARY KEY (drug_class)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
