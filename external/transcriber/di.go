package transcriber

import (
	"context"
	"fmt"

	"github.com/foxseedlab/mojiokoshin-worker/internal/config"
	"github.com/foxseedlab/mojiokoshin-worker/internal/transcriber"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (transcriber.Engine, error) {
		c := do.MustInvoke[*config.Config](i)
		switch c.TranscriberEngine {
		case config.TranscriberEngineCloudSpeech:
			return NewCloudSpeechEngine(context.Background(), CloudSpeechConfig{
				ProjectID:       c.GoogleCloudProjectID,
				CredentialsJSON: c.GoogleCloudCredentialsJSON,
				Language:        c.GoogleCloudSpeechLanguage,
				Location:        c.GoogleCloudSpeechLocation,
				Model:           c.GoogleCloudSpeechModel,
			})
		case config.TranscriberEngineWhisper:
			return NewWhisperEngine(WhisperConfig{
				ModelPath: c.WhisperModelPath,
				Language:  c.WhisperLanguage,
				Threads:   c.WhisperThreads,
			})
		default:
			return nil, fmt.Errorf("unknown transcriber engine %q", c.TranscriberEngine)
		}
	})
	do.Provide(injector, func(i do.Injector) (*transcriber.SharedModel, error) {
		engine, err := do.Invoke[transcriber.Engine](i)
		if err != nil {
			return nil, err
		}
		return transcriber.NewSharedModel(engine), nil
	})
}
