//go:build !ffmpeg && opus

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
	"github.com/hraban/opus"
)

const (
	opusSampleRate  = 48000
	opusMaxChannels = 8
	// 120 ms at 48 kHz is the largest Opus frame.
	opusFrameSamples = opusSampleRate * 120 / 1000
)

var opusHeadMagic = []byte("OpusHead")

// OpusDecoder handles Ogg/Opus input only. It is used in builds without
// FFmpeg.
type OpusDecoder struct{}

func NewDecoder() audio.Decoder {
	return &OpusDecoder{}
}

func (d *OpusDecoder) DecodePCM(data []byte) ([]float32, error) {
	channels, err := opusChannelCount(data)
	if err != nil {
		return nil, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpenInput, err)
	}
	defer func() {
		_ = stream.Close()
	}()

	pcm := make([]float32, opusFrameSamples*channels)
	var interleaved []float32
	for {
		n, err := stream.ReadFloat32(pcm)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrCodecOpen, err)
		}
		interleaved = append(interleaved, pcm[:n*channels]...)
	}

	return resampleMono(downmix(interleaved, channels), opusSampleRate)
}

func opusChannelCount(data []byte) (int, error) {
	i := bytes.Index(data, opusHeadMagic)
	if i < 0 {
		return 0, audio.ErrNoAudioStream
	}
	if len(data) < i+10 {
		return 0, audio.ErrStreamInfo
	}
	channels := int(data[i+9])
	if channels < 1 || channels > opusMaxChannels {
		return 0, fmt.Errorf("%w: %d channels", audio.ErrStreamInfo, channels)
	}
	return channels, nil
}
