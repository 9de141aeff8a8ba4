package webhook

import "context"

const ResultSchemaVersion = 1

const (
	ResultKindTranscript = "transcript"
	ResultKindSummary    = "summary"
)

type ResultPayload struct {
	SchemaVersion   int      `json:"schema_version"`
	Kind            string   `json:"kind"`
	TranscriptID    string   `json:"transcript_id"`
	SummaryID       string   `json:"summary_id,omitempty"`
	UserID          string   `json:"user_id,omitempty"`
	StartAt         string   `json:"start_at"`
	EndAt           string   `json:"end_at"`
	DurationSeconds int64    `json:"duration_seconds"`
	SegmentCount    int      `json:"segment_count"`
	Segments        []string `json:"segments"`
	Text            string   `json:"text"`
}

type Sender interface {
	SendResult(ctx context.Context, payload ResultPayload) error
}
