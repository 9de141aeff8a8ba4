package persistence

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/foxseedlab/mojiokoshin-worker/internal/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClient stores request output directly. Chunks are buffered in
// memory per request and written in one transaction on CloseAndWait.
type PostgresClient struct {
	pool *pgxpool.Pool

	schemaMu sync.Mutex
	migrated bool
}

func NewPostgresClient(pool *pgxpool.Pool) *PostgresClient {
	return &PostgresClient{pool: pool}
}

func (c *PostgresClient) OpenTranscriptStream(ctx context.Context) (persistence.Stream, error) {
	return &postgresStream{ctx: ctx, client: c, kind: persistence.KindTranscript}, nil
}

func (c *PostgresClient) OpenSummaryStream(ctx context.Context) (persistence.Stream, error) {
	return &postgresStream{ctx: ctx, client: c, kind: persistence.KindSummary}, nil
}

func (c *PostgresClient) Shutdown() {
	c.pool.Close()
}

// ensureSchema runs the migration until it succeeds once.
func (c *PostgresClient) ensureSchema(ctx context.Context) error {
	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()
	if c.migrated {
		return nil
	}
	if err := RunMigration(ctx, c.pool); err != nil {
		return fmt.Errorf("failed to run migration: %w", err)
	}
	c.migrated = true
	return nil
}

type postgresStream struct {
	ctx    context.Context
	client *PostgresClient
	kind   persistence.Kind

	mu     sync.Mutex
	chunks []persistence.Chunk
}

func (s *postgresStream) Write(chunk persistence.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *postgresStream) CloseAndWait() error {
	s.mu.Lock()
	chunks := s.chunks
	s.chunks = nil
	s.mu.Unlock()

	if len(chunks) == 0 {
		return nil
	}
	rec := aggregate(s.kind, chunks)
	if err := s.client.ensureSchema(s.ctx); err != nil {
		return err
	}
	err := pgx.BeginFunc(s.ctx, s.client.pool, func(tx pgx.Tx) error {
		if _, err := tx.CopyFrom(s.ctx,
			pgx.Identifier{"persisted_chunks"},
			[]string{"kind", "transcript_id", "summary_id", "user_id", "seq", "text", "spoken_at"},
			pgx.CopyFromSlice(len(chunks), func(i int) ([]any, error) {
				c := chunks[i]
				return []any{string(s.kind), c.TranscriptID, c.SummaryID, c.UserID, i, c.Text, c.Time}, nil
			}),
		); err != nil {
			return fmt.Errorf("failed to copy chunks: %w", err)
		}
		return insertRecord(s.ctx, tx, rec)
	})
	if err != nil {
		return fmt.Errorf("failed to persist %s %s: %w", s.kind, rec.ID, err)
	}
	return nil
}

// record is the per-request row: text joined by spaces, duration from the
// first to the last chunk.
type record struct {
	Kind            persistence.Kind
	ID              string
	TranscriptID    string
	UserID          string
	Text            string
	DurationSeconds int64
}

func aggregate(kind persistence.Kind, chunks []persistence.Chunk) record {
	first, last := chunks[0], chunks[len(chunks)-1]
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	rec := record{
		Kind:            kind,
		ID:              last.TranscriptID,
		TranscriptID:    last.TranscriptID,
		UserID:          last.UserID,
		Text:            strings.Join(texts, " "),
		DurationSeconds: int64(last.Time.Sub(first.Time) / time.Second),
	}
	if kind == persistence.KindSummary {
		rec.ID = last.SummaryID
	}
	return rec
}

func insertRecord(ctx context.Context, tx pgx.Tx, rec record) error {
	var err error
	switch rec.Kind {
	case persistence.KindSummary:
		_, err = tx.Exec(ctx,
			`INSERT INTO summaries (id, transcript_id, user_id, text, duration_seconds)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET text = EXCLUDED.text, duration_seconds = EXCLUDED.duration_seconds`,
			rec.ID, rec.TranscriptID, rec.UserID, rec.Text, rec.DurationSeconds)
	default:
		_, err = tx.Exec(ctx,
			`INSERT INTO transcriptions (id, user_id, text, duration_seconds)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE SET text = EXCLUDED.text, duration_seconds = EXCLUDED.duration_seconds`,
			rec.ID, rec.UserID, rec.Text, rec.DurationSeconds)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", rec.Kind, err)
	}
	return nil
}
