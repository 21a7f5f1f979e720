package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/Kaljurand/aceview-sub001/ace"
	"github.com/Kaljurand/aceview-sub001/corpus"
	"github.com/Kaljurand/aceview-sub001/storage"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore expects the DocsSchema to exist in the pool database.
func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

// labels are stored as a JSON array, or '' for none
func encodeLabels(labels []string) (string, error) {
	if len(labels) == 0 {
		return "", nil
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeLabels(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var labels []string
	if err := json.Unmarshal([]byte(s), &labels); err != nil {
		return nil, fmt.Errorf("invalid labels %q: %w", s, err)
	}
	return labels, nil
}

func (h *DocStore) List(labelMatch string) ([]corpus.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []corpus.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY title", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			labels, err := decodeLabels(stmt.ColumnText(2))
			if err != nil {
				return err
			}
			doc := corpus.Doc{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: labels,
			}
			if doc.HasLabel(labelMatch) {
				docs = append(docs, doc)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (corpus.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return corpus.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := corpus.Doc{Id: id}
	found := false
	err = sqlitex.Execute(conn, "SELECT title, labels, paragraphs FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			labels, err := decodeLabels(stmt.ColumnText(1))
			if err != nil {
				return err
			}
			found = true
			doc.Title = stmt.ColumnText(0)
			doc.Labels = labels
			doc.Paragraphs = make([][]ace.Sentence, stmt.ColumnInt(2))
			return nil
		},
	})
	if err != nil {
		return corpus.Doc{}, err
	}
	if !found {
		return corpus.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	err = sqlitex.Execute(conn, "SELECT paragraph, data FROM sentences WHERE doc_id = ? ORDER BY id", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			p := stmt.ColumnInt(0)
			if p < 0 || p >= len(doc.Paragraphs) {
				return fmt.Errorf("doc %d: paragraph %d out of range", id, p)
			}
			var s ace.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &s); err != nil {
				return err
			}
			doc.Paragraphs[p] = append(doc.Paragraphs[p], s)
			return nil
		},
	})
	if err != nil {
		return corpus.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) FindCandidates(words []string, after storage.Cursor, limit int, onCandidate func(storage.SentenceResult) error) (storage.Cursor, error) {
	words = storage.Normalize(words)
	if len(words) == 0 {
		return after, nil
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	// INTERSECT keeps the sentence ids that contain ALL words, each once.
	var queryBuilder strings.Builder
	var args []any

	for i, w := range words {
		if i > 0 {
			queryBuilder.WriteString(" INTERSECT ")
		}
		queryBuilder.WriteString("SELECT sentence_id FROM sentence_words WHERE word = ? AND sentence_id > ?")
		args = append(args, w, after)
	}
	queryBuilder.WriteString(" ORDER BY 1")
	if limit > 0 {
		queryBuilder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	var rowIDs []int64
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowIDs = append(rowIDs, stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return after, err
	}

	if len(rowIDs) == 0 {
		return after, nil
	}

	idStrings := make([]string, len(rowIDs))
	for i, id := range rowIDs {
		idStrings[i] = strconv.FormatInt(id, 10)
	}

	query := fmt.Sprintf(`SELECT s.id, s.doc_id, d.title, s.paragraph, s.idx, s.data
		FROM sentences s JOIN docs d ON s.doc_id = d.id
		WHERE s.id IN (%s) ORDER BY s.id`, strings.Join(idStrings, ","))

	newCursor := after
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			res := storage.SentenceResult{
				RowID:     stmt.ColumnInt64(0),
				DocID:     stmt.ColumnInt(1),
				DocTitle:  stmt.ColumnText(2),
				Paragraph: stmt.ColumnInt(3),
				Index:     stmt.ColumnInt(4),
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(5)), &res.Sentence); err != nil {
				return err
			}
			if err := onCandidate(res); err != nil {
				return err
			}
			newCursor = storage.Cursor(res.RowID)
			return nil
		},
	})
	if err != nil {
		return newCursor, err
	}

	return newCursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	seen := map[string]bool{}
	var labels []string
	err = sqlitex.Execute(conn, "SELECT labels FROM docs WHERE labels != ''", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ls, err := decodeLabels(stmt.ColumnText(0))
			if err != nil {
				return err
			}
			for _, l := range ls {
				if seen[l] || !strings.Contains(l, pattern) {
					continue
				}
				seen[l] = true
				labels = append(labels, l)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(labels)
	return labels, nil
}

// Write inserts doc, or replaces the sentences and labels of the stored doc
// with the same title.
func (h *DocStore) Write(doc corpus.Doc) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels, err := encodeLabels(doc.Labels)
	if err != nil {
		return 0, err
	}
	found := false
	err = sqlitex.Execute(conn, "SELECT id FROM docs WHERE title = ?", &sqlitex.ExecOptions{
		Args: []any{doc.Title},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			id = stmt.ColumnInt(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return 0, err
	}

	if found {
		if err = h.clear(conn, id); err != nil {
			return 0, err
		}
		err = sqlitex.Execute(conn, "UPDATE docs SET labels = ?, paragraphs = ? WHERE id = ?", &sqlitex.ExecOptions{
			Args: []any{labels, len(doc.Paragraphs), id},
		})
	} else {
		err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels, paragraphs) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{doc.Title, labels, len(doc.Paragraphs)},
		})
		id = int(conn.LastInsertRowID())
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write doc: %w", err)
	}

	idx := 0
	for p, paragraph := range doc.Paragraphs {
		for _, s := range paragraph {
			if err = h.insertSentence(conn, id, p, idx, s); err != nil {
				return 0, err
			}
			idx++
		}
	}

	glog.V(1).Infof("sqlite: wrote doc %d %q with %d sentences", id, doc.Title, idx)
	return id, nil
}

func (h *DocStore) clear(conn *sqlite.Conn, id int) error {
	err := sqlitex.Execute(conn, "DELETE FROM sentence_words WHERE sentence_id IN (SELECT id FROM sentences WHERE doc_id = ?)", &sqlitex.ExecOptions{
		Args: []any{id},
	})
	if err != nil {
		return fmt.Errorf("failed to delete words: %w", err)
	}
	err = sqlitex.Execute(conn, "DELETE FROM sentences WHERE doc_id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
	})
	if err != nil {
		return fmt.Errorf("failed to delete sentences: %w", err)
	}
	return nil
}

func (h *DocStore) insertSentence(conn *sqlite.Conn, docID, paragraph, idx int, s ace.Sentence) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, paragraph, idx, data) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []any{docID, paragraph, idx, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert sentence: %w", err)
	}
	sentID := conn.LastInsertRowID()

	for _, w := range storage.IndexWords(s) {
		err = sqlitex.Execute(conn, "INSERT INTO sentence_words (word, sentence_id) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []any{w, sentID},
		})
		if err != nil {
			return fmt.Errorf("failed to insert word: %w", err)
		}
	}
	return nil
}
