// Package memory implements the two-table repository from spec.md §4.2:
// a documents table and a user_facts table, each backed by a sqlite-vec
// vec0 virtual table for similarity search. Schema and query shape are
// grounded on pkg/koramem and pkg/sheldonmem's facts/vectors split,
// generalized from the single facts+vec_facts pair to two independently
// scoped tables.
package memory

import (
	"context"
	"database/sql"
	"time"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Scope string

const (
	ScopeHybrid        Scope = "hybrid"
	ScopeFactsOnly     Scope = "facts_only"
	ScopeDocumentsOnly Scope = "documents_only"
)

// Record is a single row returned from either table, carrying enough of
// the original row to drive the lexical signals in spec.md §4.2 step 4.
type Record struct {
	ID        string
	Table     string // "documents" or "user_facts"
	Text      string
	Source    string // documents: source file basename; empty for user_facts
	Category  string // user_facts: category; empty for documents
	CreatedAt time.Time
	Distance  float32
}

type Store struct {
	db       *sql.DB
	embedder Embedder
	dim      int
}

func NewStore(db *sql.DB, embedder Embedder, dim int) (*Store, error) {
	s := &Store{db: db, embedder: embedder, dim: dim}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) embeddingDimension() int {
	return s.dim
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}
