package memory

import (
	"context"
	"path/filepath"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	"github.com/google/uuid"

	"github.com/archestra-labs/memcore/internal/logger"
)

// SaveDocument implements the write path from spec.md §4.2: embed the
// input, skip silently if the embedding is empty, then insert a fresh
// record with a unique id. source is stored as the basename of
// sourceFile so DeleteDocumentsBySource's basename match finds it again.
func (s *Store) SaveDocument(ctx context.Context, text, sourceFile string) (string, error) {
	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return "", err
	}
	if len(embedding) == 0 {
		logger.Info("save_document: empty embedding, skipping write", "source", sourceFile)
		return "", nil
	}

	id := uuid.New().String()
	source := filepath.Base(sourceFile)

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (id, text, source) VALUES (?, ?, ?)",
		id, text, source,
	); err != nil {
		return "", err
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO vec_documents (row_id, embedding) VALUES (?, ?)",
		id, blob,
	); err != nil {
		return "", err
	}

	return id, nil
}

// SaveUserFact mirrors SaveDocument for the user_facts table, storing
// category in place of source file.
func (s *Store) SaveUserFact(ctx context.Context, fact, category string) (string, error) {
	embedding, err := s.embedder.Embed(ctx, fact)
	if err != nil {
		return "", err
	}
	if len(embedding) == 0 {
		logger.Info("save_user_fact: empty embedding, skipping write", "category", category)
		return "", nil
	}

	id := uuid.New().String()

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO user_facts (id, fact, category) VALUES (?, ?, ?)",
		id, fact, category,
	); err != nil {
		return "", err
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO vec_user_facts (row_id, embedding) VALUES (?, ?)",
		id, blob,
	); err != nil {
		return "", err
	}

	return id, nil
}
