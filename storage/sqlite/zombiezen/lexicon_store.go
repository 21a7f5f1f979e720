package zombiezen

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/lexicon"
	"github.com/Kaljurand/aceview-sub001/storage"
)

// LexiconStore keeps lexicon entries in the lexicon table, one row per
// entity and morphological type.
type LexiconStore struct {
	pool *sqlitex.Pool
}

var _ storage.LexiconRepository = (*LexiconStore)(nil)

// NewLexiconStore expects the LexiconSchema to exist in the pool database.
func NewLexiconStore(pool *sqlitex.Pool) *LexiconStore {
	return &LexiconStore{pool: pool}
}

func (h *LexiconStore) Entries() ([]lexicon.Entry, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var entries []lexicon.Entry
	err = sqlitex.Execute(conn, "SELECT wordform, iri, morph FROM lexicon ORDER BY iri, morph", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			tag := stmt.ColumnText(2)
			m, ok := ace.ParseMorphTag(tag)
			if !ok {
				return fmt.Errorf("unknown morphological type %q", tag)
			}
			entries = append(entries, lexicon.Entry{
				Wordform: stmt.ColumnText(0),
				IRI:      stmt.ColumnText(1),
				Morph:    m,
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (h *LexiconStore) Put(e lexicon.Entry) error {
	if e.Wordform == "" || e.IRI == "" || !e.Morph.Valid() {
		return fmt.Errorf("invalid lexicon entry %s", e)
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return sqlitex.Execute(conn, `
		INSERT INTO lexicon (iri, morph, wordform, updated)
		VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		ON CONFLICT(iri, morph) DO UPDATE SET
			wordform = excluded.wordform,
			updated = excluded.updated
	`, &sqlitex.ExecOptions{
		Args: []any{e.IRI, e.Morph.Tag(), e.Wordform},
	})
}

func (h *LexiconStore) Delete(e lexicon.Entry) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	return sqlitex.Execute(conn, "DELETE FROM lexicon WHERE iri = ? AND morph = ? AND wordform = ?", &sqlitex.ExecOptions{
		Args: []any{e.IRI, e.Morph.Tag(), e.Wordform},
	})
}
