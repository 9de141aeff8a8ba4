package worker

import (
	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
	"github.com/foxseedlab/mojiokoshin-worker/internal/completion"
	"github.com/foxseedlab/mojiokoshin-worker/internal/persistence"
	"github.com/foxseedlab/mojiokoshin-worker/internal/transcriber"
	"github.com/foxseedlab/mojiokoshin-worker/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Transcriber, error) {
		decoder := do.MustInvoke[audio.Decoder](i)
		model, err := do.Invoke[*transcriber.SharedModel](i)
		if err != nil {
			return nil, err
		}
		pc := do.MustInvoke[persistence.Client](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewTranscriber(decoder, model, pc, wh), nil
	})
	do.Provide(injector, func(i do.Injector) (*Summarizer, error) {
		cc := do.MustInvoke[completion.Client](i)
		pc := do.MustInvoke[persistence.Client](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewSummarizer(cc, pc, wh), nil
	})
}
