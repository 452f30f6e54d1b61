package memory

import (
	"context"
	"path/filepath"
)

// DeleteDocumentsBySource scopes to the documents table and matches on
// the basename of sourceFile, per spec.md §4.2's delete semantics. A
// document saved under a different directory with the same filename
// will also match; this is a known, accepted collision (see DESIGN.md).
func (s *Store) DeleteDocumentsBySource(ctx context.Context, sourceFile string) (int, error) {
	base := filepath.Base(sourceFile)

	ids, err := s.documentIDsBySource(ctx, base)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM vec_documents WHERE row_id = ?", id); err != nil {
			return 0, err
		}
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE source = ?", base)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) documentIDsBySource(ctx context.Context, source string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM documents WHERE source = ?", source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ClearDocuments removes all rows from the documents table and its vec
// index, scoped by table rather than a truncate, so schema state (the
// table and index definitions) is preserved per spec.md §4.2.
func (s *Store) ClearDocuments(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents")
	if err != nil {
		return 0, err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM vec_documents"); err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// ClearUserFacts mirrors ClearDocuments for the user_facts table.
func (s *Store) ClearUserFacts(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM user_facts")
	if err != nil {
		return 0, err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM vec_user_facts"); err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
