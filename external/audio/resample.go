package audio

import (
	"fmt"

	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
	resampling "github.com/tphakala/go-audio-resampling"
)

// downmix averages interleaved frames into a single channel.
func downmix(interleaved []float32, channels int) []float64 {
	if channels < 1 {
		channels = 1
	}
	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := range frames {
		var sum float64
		for c := range channels {
			sum += float64(interleaved[i*channels+c])
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// resampleMono converts mono samples at inputRate to audio.SampleRate,
// including the resampler's buffered tail.
func resampleMono(mono []float64, inputRate int) ([]float32, error) {
	if inputRate == audio.SampleRate {
		return toFloat32(nil, mono), nil
	}
	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(inputRate),
		OutputRate: float64(audio.SampleRate),
		Channels:   audio.Channels,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrResampler, err)
	}

	out, err := rs.Process(mono)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrResampler, err)
	}
	samples := toFloat32(make([]float32, 0, len(out)), out)

	tail, err := rs.Flush()
	if err != nil {
		return nil, fmt.Errorf("%w: flush: %w", audio.ErrResampler, err)
	}
	return toFloat32(samples, tail), nil
}

func toFloat32(dst []float32, src []float64) []float32 {
	for _, s := range src {
		dst = append(dst, float32(s))
	}
	return dst
}
