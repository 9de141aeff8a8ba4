//go:build !ffmpeg && !opus

package audio

import "github.com/foxseedlab/mojiokoshin-worker/internal/audio"

type unsupportedDecoder struct{}

func NewDecoder() audio.Decoder {
	return &unsupportedDecoder{}
}

func (d *unsupportedDecoder) DecodePCM(_ []byte) ([]float32, error) {
	return nil, audio.ErrUnsupported
}
