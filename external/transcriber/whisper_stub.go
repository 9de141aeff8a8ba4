//go:build !whisper

package transcriber

import (
	"errors"

	"github.com/foxseedlab/mojiokoshin-worker/internal/transcriber"
)

type WhisperConfig struct {
	ModelPath string
	Language  string
	Threads   int
}

var errWhisperUnavailable = errors.New("whisper engine is not included in this build")

func NewWhisperEngine(_ WhisperConfig) (transcriber.Engine, error) {
	return nil, errWhisperUnavailable
}
