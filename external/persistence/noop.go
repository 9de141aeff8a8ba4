package persistence

import (
	"context"

	"github.com/foxseedlab/mojiokoshin-worker/internal/persistence"
)

// NoopClient accepts and discards everything.
type NoopClient struct{}

func (NoopClient) OpenTranscriptStream(context.Context) (persistence.Stream, error) {
	return noopStream{}, nil
}

func (NoopClient) OpenSummaryStream(context.Context) (persistence.Stream, error) {
	return noopStream{}, nil
}

type noopStream struct{}

func (noopStream) Write(persistence.Chunk) error { return nil }

func (noopStream) CloseAndWait() error { return nil }
