package memory

import (
	"database/sql"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// Open mirrors pkg/sheldonmem.Open: a single entrypoint that opens the
// database file, enables WAL mode, and runs the migration before
// returning a usable Store.
func Open(path string, embedder Embedder, dim int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	s, err := NewStore(db, embedder, dim)
	if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}
