package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foxseedlab/mojiokoshin-worker/internal/completion"
	"github.com/foxseedlab/mojiokoshin-worker/internal/correlation"
	"github.com/foxseedlab/mojiokoshin-worker/internal/persistence"
	"github.com/foxseedlab/mojiokoshin-worker/internal/webhook"
)

type Prompt struct {
	Model        string
	Temperature  float32
	Prompt       string
	Transcript   string
	TranscriptID string
	UserID       string
}

type Summarizer struct {
	completion  completion.Client
	persistence persistence.Client
	notifier    *notifier

	now   func() time.Time
	newID func() string
}

func NewSummarizer(cc completion.Client, pc persistence.Client, wh webhook.Sender) *Summarizer {
	return &Summarizer{
		completion:  cc,
		persistence: pc,
		notifier:    &notifier{sender: wh},
		now:         time.Now,
		newID:       correlation.NewID,
	}
}

// Summarize streams a summary of p.Transcript, calling send once per content
// delta in arrival order.
func (s *Summarizer) Summarize(ctx context.Context, p Prompt, send func(text string) error) error {
	fan := persistence.OpenFanout(ctx, s.persistence, persistence.KindSummary)
	defer fan.Finish()

	id := s.newID()
	startedAt := s.now()
	slog.Info("incoming summarize request", "summary_id", id, "transcription_id", p.TranscriptID, "user_id", p.UserID, "model", p.Model)

	req := completion.Request{
		Model:       p.Model,
		Temperature: p.Temperature,
		Messages: []completion.Message{
			{Role: completion.RoleDeveloper, Content: summaryInstruction},
			{Role: completion.RoleUser, Content: summaryUserMessage(p.Prompt, p.Transcript)},
		},
	}

	var deltas []string
	err := s.completion.Stream(ctx, req, func(content string) error {
		slog.Debug("received summary chunk", "summary_id", id, "size", len(content))
		if err := send(content); err != nil {
			return fmt.Errorf("%w: %w", ErrSend, err)
		}
		fan.Write(persistence.Chunk{
			TranscriptID: p.TranscriptID,
			SummaryID:    id,
			UserID:       p.UserID,
			Text:         content,
			Time:         s.now(),
		})
		deltas = append(deltas, content)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSend) {
			slog.Info("caller stream closed during summarization", "error", err, "summary_id", id)
			return err
		}
		slog.Error("failed to summarize", "error", err, "summary_id", id)
		return fmt.Errorf("%w: %w", ErrCompletion, err)
	}

	slog.Info("summarize ok", "summary_id", id, "chunks", len(deltas), "persistence_degraded", fan.Degraded())
	s.notifier.notify(ctx, buildResultPayload(resultInput{
		kind:         webhook.ResultKindSummary,
		transcriptID: p.TranscriptID,
		summaryID:    id,
		userID:       p.UserID,
		startedAt:    startedAt,
		endedAt:      s.now(),
		segments:     deltas,
		separator:    "",
	}))
	return nil
}

func (s *Summarizer) Models(ctx context.Context) ([]string, error) {
	models, err := s.completion.Models(ctx)
	if err != nil {
		slog.Error("failed to retrieve models", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrModels, err)
	}
	return models, nil
}

// WaitNotifications blocks until every result webhook started so far has
// finished.
func (s *Summarizer) WaitNotifications() {
	s.notifier.wait()
}
