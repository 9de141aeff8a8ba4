package audio

import "errors"

const (
	// SampleRate is the rate every decoder resamples to.
	SampleRate = 16000
	Channels   = 1
)

var (
	ErrAllocation      = errors.New("failed to allocate decoder resources")
	ErrOpenInput       = errors.New("failed to open input")
	ErrStreamInfo      = errors.New("failed to read stream info")
	ErrNoAudioStream   = errors.New("no audio stream found")
	ErrNoDecoder       = errors.New("no decoder for audio stream")
	ErrRead            = errors.New("failed to read packet")
	ErrCodecParameters = errors.New("failed to copy codec parameters")
	ErrCodecOpen       = errors.New("failed to open codec")
	ErrResampler       = errors.New("failed to resample audio")
	ErrUnsupported     = errors.New("audio decoding is not supported by this build")
)

// Decoder turns a complete in-memory media file into mono float32 PCM at
// SampleRate. An input with an audio stream but no frames yields an empty
// slice and no error.
type Decoder interface {
	DecodePCM(data []byte) ([]float32, error)
}
