package worker

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/foxseedlab/mojiokoshin-worker/internal/webhook"
)

const webhookTimeout = 10 * time.Second

type resultInput struct {
	kind         string
	transcriptID string
	summaryID    string
	userID       string
	startedAt    time.Time
	endedAt      time.Time
	segments     []string
	separator    string
}

func buildResultPayload(in resultInput) webhook.ResultPayload {
	parts := make([]string, 0, len(in.segments))
	for _, s := range in.segments {
		if in.separator == " " {
			s = strings.TrimSpace(s)
		}
		parts = append(parts, s)
	}

	durationSeconds := int64(in.endedAt.Sub(in.startedAt).Seconds())
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	return webhook.ResultPayload{
		SchemaVersion:   webhook.ResultSchemaVersion,
		Kind:            in.kind,
		TranscriptID:    in.transcriptID,
		SummaryID:       in.summaryID,
		UserID:          in.userID,
		StartAt:         in.startedAt.UTC().Format(time.RFC3339),
		EndAt:           in.endedAt.UTC().Format(time.RFC3339),
		DurationSeconds: durationSeconds,
		SegmentCount:    len(in.segments),
		Segments:        in.segments,
		Text:            strings.Join(parts, in.separator),
	}
}

// notifier sends result webhooks in the background.
type notifier struct {
	sender webhook.Sender
	wg     sync.WaitGroup
}

func (n *notifier) notify(ctx context.Context, payload webhook.ResultPayload) {
	if n.sender == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	n.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, webhookTimeout)
		defer cancel()
		if err := n.sender.SendResult(ctx, payload); err != nil {
			slog.Error("failed to send result webhook", "error", err, "kind", payload.Kind, "transcription_id", payload.TranscriptID)
		}
	})
}

func (n *notifier) wait() {
	n.wg.Wait()
}
