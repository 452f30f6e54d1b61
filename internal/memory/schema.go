package memory

import "strconv"

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    source TEXT NOT NULL,
    created_at DATETIME DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source);

CREATE TABLE IF NOT EXISTS user_facts (
    id TEXT PRIMARY KEY,
    fact TEXT NOT NULL,
    category TEXT NOT NULL,
    created_at DATETIME DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_user_facts_category ON user_facts(category);
`

// vecSchemaFor builds the vec0 virtual table definition for one of the
// two memory tables, sized to the configured embedding dimension.
func vecSchemaFor(table string, dim int) string {
	return "CREATE VIRTUAL TABLE IF NOT EXISTS vec_" + table + " USING vec0(\n" +
		"    row_id TEXT PRIMARY KEY,\n" +
		"    embedding FLOAT[" + strconv.Itoa(dim) + "]\n" +
		");"
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	dim := s.embeddingDimension()

	if _, err := s.db.Exec(vecSchemaFor("documents", dim)); err != nil {
		return err
	}
	if _, err := s.db.Exec(vecSchemaFor("user_facts", dim)); err != nil {
		return err
	}

	return nil
}
