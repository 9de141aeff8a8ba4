//go:build whisper

package transcriber

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foxseedlab/mojiokoshin-worker/internal/transcriber"
	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

type WhisperConfig struct {
	ModelPath string
	Language  string
	Threads   int
}

// WhisperEngine keeps one model and one inference context for the lifetime
// of the process.
type WhisperEngine struct {
	model whisper.Model
	ctx   whisper.Context
}

func NewWhisperEngine(cfg WhisperConfig) (transcriber.Engine, error) {
	model, err := whisper.New(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %q: %w", cfg.ModelPath, err)
	}
	wctx, err := model.NewContext()
	if err != nil {
		_ = model.Close()
		return nil, fmt.Errorf("create whisper context: %w", err)
	}

	if cfg.Language != "" {
		if err := wctx.SetLanguage(cfg.Language); err != nil {
			slog.Warn("whisper language rejected; using model default", "language", cfg.Language, "error", err)
		}
	}
	wctx.SetTranslate(false)
	if cfg.Threads > 0 {
		wctx.SetThreads(uint(cfg.Threads))
	}

	slog.Info("whisper model loaded", "path", cfg.ModelPath, "multilingual", model.IsMultilingual(), "language", wctx.Language())
	return &WhisperEngine{model: model, ctx: wctx}, nil
}

func (e *WhisperEngine) Process(ctx context.Context, samples []float32, onSegment func(text string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.ctx.Process(samples, nil, func(seg whisper.Segment) {
		onSegment(seg.Text)
	}, nil)
}

func (e *WhisperEngine) Close() error {
	return e.model.Close()
}
