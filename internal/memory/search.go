package memory

import (
	"context"
	"sort"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/ncruces"

	"github.com/archestra-labs/memcore/internal/logger"
)

type SearchOptions struct {
	Scope       Scope
	K           int
	StrictMatch bool
}

// Search implements the core algorithm from spec.md §4.2: embed once,
// run per-table vector search, compute lexical signals, apply rank
// boosts, enforce the lexical guardrail, then dedupe/sort/top-k.
func (s *Store) Search(ctx context.Context, query string, opts SearchOptions) ([]Record, error) {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(embedding) == 0 {
		return nil, nil
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, err
	}

	var rows []Record

	if opts.Scope == ScopeHybrid || opts.Scope == ScopeDocumentsOnly {
		docs, err := s.vectorSearch(ctx, "documents", blob, opts.K)
		if err != nil {
			logger.Warn("documents vector search failed, degrading to empty", "error", err)
		} else {
			rows = append(rows, docs...)
		}
	}
	if opts.Scope == ScopeHybrid || opts.Scope == ScopeFactsOnly {
		facts, err := s.vectorSearch(ctx, "user_facts", blob, opts.K)
		if err != nil {
			logger.Warn("user_facts vector search failed, degrading to empty", "error", err)
		} else {
			rows = append(rows, facts...)
		}
	}

	queryTokens := tokenize(query)

	type scored struct {
		rec     Record
		boosted float32
		lexical bool
	}

	scoredRows := make([]scored, 0, len(rows))
	for _, r := range rows {
		pm := phraseMatch(query, r.Text, r.Category, r.Source)
		kh := keywordHits(queryTokens, r.Text, r.Category, r.Source)

		boost := float32(1.0)
		if pm {
			boost = 0.5
		} else if kh > 0 {
			boost = 1 - 0.1*float32(kh)
			if boost < 0.6 {
				boost = 0.6
			}
		}

		scoredRows = append(scoredRows, scored{
			rec:     r,
			boosted: r.Distance * boost,
			lexical: pm || kh > 0,
		})
	}

	// Lexical guardrail, spec.md §4.2 step 6.
	if len(queryTokens) > 0 {
		anyLexical := false
		for _, sr := range scoredRows {
			if sr.lexical {
				anyLexical = true
				break
			}
		}

		if anyLexical {
			filtered := scoredRows[:0]
			for _, sr := range scoredRows {
				if sr.lexical {
					filtered = append(filtered, sr)
				}
			}
			scoredRows = filtered
		} else if expressesPersonalIntent(query) {
			filtered := scoredRows[:0]
			for _, sr := range scoredRows {
				if matchesPersonalIntentShape(sr.rec.Text) {
					filtered = append(filtered, sr)
				}
			}
			scoredRows = filtered
		} else if opts.StrictMatch {
			return nil, nil
		}
	}

	sort.SliceStable(scoredRows, func(i, j int) bool {
		return scoredRows[i].boosted < scoredRows[j].boosted
	})

	seen := map[string]struct{}{}
	var result []Record
	for _, sr := range scoredRows {
		if _, ok := seen[sr.rec.Text]; ok {
			continue
		}
		seen[sr.rec.Text] = struct{}{}
		result = append(result, sr.rec)
		if len(result) == opts.K {
			break
		}
	}

	return result, nil
}

func (s *Store) vectorSearch(ctx context.Context, table string, blob []byte, k int) ([]Record, error) {
	var query string

	switch table {
	case "documents":
		query = `
			SELECT d.id, d.text, d.source, d.created_at, v.distance
			FROM vec_documents v
			JOIN documents d ON v.row_id = d.id
			WHERE v.embedding MATCH ? AND k = ?
			ORDER BY v.distance
		`
	case "user_facts":
		query = `
			SELECT f.id, f.fact, f.category, f.created_at, v.distance
			FROM vec_user_facts v
			JOIN user_facts f ON v.row_id = f.id
			WHERE v.embedding MATCH ? AND k = ?
			ORDER BY v.distance
		`
	default:
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, query, blob, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var secondary string
		if err := rows.Scan(&r.ID, &r.Text, &secondary, &r.CreatedAt, &r.Distance); err != nil {
			return nil, err
		}
		r.Table = table
		if table == "documents" {
			r.Source = secondary
		} else {
			r.Category = secondary
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Recent returns the most recently written rows across both tables,
// newest first, bounded by limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, source, '' as category, created_at FROM documents
		UNION ALL
		SELECT id, fact, '' as source, category, created_at FROM user_facts
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Text, &r.Source, &r.Category, &r.CreatedAt); err != nil {
			return nil, err
		}
		if r.Source != "" {
			r.Table = "documents"
		} else {
			r.Table = "user_facts"
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
