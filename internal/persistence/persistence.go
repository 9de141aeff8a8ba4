package persistence

import (
	"context"
	"time"
)

type Chunk struct {
	TranscriptID string
	SummaryID    string
	UserID       string
	Text         string
	Time         time.Time
}

// Stream is one open persistence call. Writes are ordered; CloseAndWait ends
// the write side and blocks until the remote side has acknowledged.
type Stream interface {
	Write(chunk Chunk) error
	CloseAndWait() error
}

type Client interface {
	OpenTranscriptStream(ctx context.Context) (Stream, error)
	OpenSummaryStream(ctx context.Context) (Stream, error)
}

type Kind string

const (
	KindTranscript Kind = "transcript"
	KindSummary    Kind = "summary"
)

func (k Kind) noun() string {
	if k == KindSummary {
		return "summary"
	}
	return "transcription"
}
