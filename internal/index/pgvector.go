package index

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"homematch/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

var filterKeyRe = regexp.MustCompile(`^[a-z_]+$`)

// Pgvector stores listing embeddings in a PostgreSQL table with a pgvector
// column. "Built" state is decided from the table's row count, the analog of
// a non-empty on-disk index directory.
type Pgvector struct {
	db       *sqlx.DB
	embedder Embedder
	table    string
}

// NewPgvector connects to PostgreSQL and makes sure the listings table and
// the vector extension exist.
func NewPgvector(dsn string, maxConn, maxIdleConn int, embedder Embedder, table string, dimensions int) (*Pgvector, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect: %v", ErrUnavailable, err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrUnavailable, err)
	}

	s := &Pgvector{db: db, embedder: embedder, table: table}
	if err := s.ensureSchema(dimensions); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Pgvector) ensureSchema(dimensions int) error {
	stmts := []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d)
		)`, s.table, dimensions),
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: failed to ensure schema: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// Close closes the database connection
func (s *Pgvector) Close() error {
	return s.db.Close()
}

// Ready reports whether the table already holds listings.
func (s *Pgvector) Ready(ctx context.Context) (bool, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of stored listings.
func (s *Pgvector) Count(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)
	if err := s.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("%w: failed to count listings: %v", ErrUnavailable, err)
	}
	return count, nil
}

// Clear removes all stored listings.
func (s *Pgvector) Clear(ctx context.Context) error {
	query := fmt.Sprintf("DELETE FROM %s", s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: failed to clear index: %v", ErrUnavailable, err)
	}
	return nil
}

// Upsert embeds each record's content and writes it under the record id.
func (s *Pgvector) Upsert(ctx context.Context, records []model.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Content
	}

	vectors, err := s.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embedding provider error: %v", ErrUnavailable, err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("%w: embedding count mismatch: got %d for %d records", ErrUnavailable, len(vectors), len(records))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to start transaction: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, metadata, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content, metadata = EXCLUDED.metadata, embedding = EXCLUDED.embedding
	`, s.table)

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare statement: %v", ErrUnavailable, err)
	}
	defer stmt.Close()

	for i, rec := range records {
		vec := pgvector.NewVector(vectors[i])
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Content, rec.Metadata, vec); err != nil {
			return fmt.Errorf("%w: failed to store %s: %v", ErrUnavailable, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", ErrUnavailable, err)
	}
	return nil
}

// Query returns up to k nearest neighbors by cosine distance, optionally
// narrowed by metadata equality filters.
func (s *Pgvector) Query(ctx context.Context, text string, k int, filter model.ConstraintSet) ([]model.ScoredListing, error) {
	vectors, err := s.embedder.CreateEmbeddings(ctx, []string{text})
	if err != nil || len(vectors) != 1 {
		return nil, fmt.Errorf("%w: embedding provider error: %v", ErrQuery, err)
	}

	whereClauses := []string{"1=1"}
	args := []interface{}{pgvector.NewVector(vectors[0])}
	argIndex := 2

	for key, value := range filter {
		if !filterKeyRe.MatchString(key) {
			return nil, fmt.Errorf("%w: invalid filter key %q", ErrQuery, key)
		}
		whereClauses = append(whereClauses, fmt.Sprintf("metadata->>'%s' = $%d", key, argIndex))
		args = append(args, value)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT id, content, metadata, embedding <=> $1 AS score
		FROM %s
		WHERE %s
		ORDER BY score ASC
		LIMIT $%d
	`, s.table, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, k)

	var rows []struct {
		ID       string         `db:"id"`
		Content  string         `db:"content"`
		Metadata model.Metadata `db:"metadata"`
		Score    float64        `db:"score"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: failed to fetch candidates: %v", ErrQuery, err)
	}

	results := make([]model.ScoredListing, len(rows))
	for i, row := range rows {
		results[i] = model.ScoredListing{
			Listing: model.ListingRecord{ID: row.ID, Content: row.Content, Metadata: row.Metadata},
			Score:   row.Score,
		}
	}
	return results, nil
}

// Get retrieves a single listing by id. Returns nil when the id is unknown.
func (s *Pgvector) Get(ctx context.Context, id string) (*model.ListingRecord, error) {
	var rec model.ListingRecord
	query := fmt.Sprintf("SELECT id, content, metadata FROM %s WHERE id = $1", s.table)
	if err := s.db.GetContext(ctx, &rec, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get listing: %v", ErrUnavailable, err)
	}
	return &rec, nil
}
