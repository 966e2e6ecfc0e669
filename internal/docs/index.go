package docs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const snippetLen = 200

// Index is the document store: metadata plus embedded chunks, sharing
// the task database.
type Index struct {
	db       *sqlx.DB
	embedder Embedder
}

// NewIndex creates the document tables if needed and returns an Index.
func NewIndex(db *sqlx.DB, embedder Embedder) (*Index, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	source     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS document_chunks (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	doc_id    TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	title     TEXT NOT NULL,
	content   TEXT NOT NULL,
	embedding BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_doc ON document_chunks(doc_id);
`)
	if err != nil {
		return nil, fmt.Errorf("creating document tables: %w", err)
	}
	return &Index{db: db, embedder: embedder}, nil
}

// AddDocument chunks, embeds and stores one document. Returns the new
// document id and the number of chunks indexed.
func (ix *Index) AddDocument(ctx context.Context, title, content, source string) (string, int, error) {
	chunks := splitChunks(content)
	if len(chunks) == 0 {
		return "", 0, fmt.Errorf("document %q has no content", title)
	}

	vectors, err := ix.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return "", 0, fmt.Errorf("embedding document %q: %w", title, err)
	}

	docID := uuid.New().String()

	tx, err := ix.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("starting document transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO documents (id, title, source, created_at) VALUES (?, ?, ?, ?)",
		docID, title, source, time.Now().UTC(),
	)
	if err != nil {
		return "", 0, fmt.Errorf("inserting document %q: %w", title, err)
	}

	for i, chunk := range chunks {
		normalize(vectors[i])
		_, err = tx.ExecContext(ctx,
			"INSERT INTO document_chunks (doc_id, title, content, embedding) VALUES (?, ?, ?, ?)",
			docID, title, chunk, encodeVector(vectors[i]),
		)
		if err != nil {
			return "", 0, fmt.Errorf("inserting chunk %d of %q: %w", i, title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("committing document %q: %w", title, err)
	}
	return docID, len(chunks), nil
}

// Search embeds the query and returns the topK most similar chunks.
// Vectors are unit length, so the dot product is the cosine score.
func (ix *Index) Search(ctx context.Context, query string, topk int) ([]Hit, error) {
	if topk < 1 {
		topk = 1
	}

	qvec, err := ix.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	normalize(qvec)

	rows, err := ix.db.QueryxContext(ctx,
		"SELECT doc_id, title, content, embedding FROM document_chunks")
	if err != nil {
		return nil, fmt.Errorf("reading chunks: %w", err)
	}
	defer rows.Close()

	best := newTopK(topk)
	for rows.Next() {
		var (
			docID, title, content string
			blob                  []byte
		)
		if err := rows.Scan(&docID, &title, &content, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		best.add(Hit{
			DocID:   docID,
			Title:   title,
			Snippet: snippet(content, snippetLen),
			Score:   dot(qvec, decodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return best.results(), nil
}

// Count returns the number of indexed documents.
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := ix.db.QueryRowxContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// DeleteDocument removes one document and its chunks. Returns false
// when the id is unknown.
func (ix *Index) DeleteDocument(ctx context.Context, docID string) (bool, error) {
	// Chunk cleanup is explicit; foreign keys may be off on shared
	// connections.
	if _, err := ix.db.ExecContext(ctx,
		"DELETE FROM document_chunks WHERE doc_id = ?", docID); err != nil {
		return false, fmt.Errorf("deleting chunks of %s: %w", docID, err)
	}
	result, err := ix.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", docID)
	if err != nil {
		return false, fmt.Errorf("deleting document %s: %w", docID, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
