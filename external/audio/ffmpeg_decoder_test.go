//go:build ffmpeg

package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
)

// pcm16WAV builds a canonical 16-bit PCM WAV file holding a sine tone.
func pcm16WAV(t *testing.T, sampleRate, channels int, seconds float64) []byte {
	t.Helper()
	frames := int(float64(sampleRate) * seconds)
	dataSize := frames * channels * 2

	var buf bytes.Buffer
	write := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("failed to write wav: %v", err)
		}
	}
	buf.WriteString("RIFF")
	write(uint32(36 + dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	write(uint32(16))
	write(uint16(1))
	write(uint16(channels))
	write(uint32(sampleRate))
	write(uint32(sampleRate * channels * 2))
	write(uint16(channels * 2))
	write(uint16(16))
	buf.WriteString("data")
	write(uint32(dataSize))
	for i := range frames {
		v := int16(0.4 * 32767 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
		for range channels {
			write(v)
		}
	}
	return buf.Bytes()
}

func TestDecodePCM_StereoWAVTo16kMono(t *testing.T) {
	d := NewDecoder()

	samples, err := d.DecodePCM(pcm16WAV(t, 44100, 2, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const want = 5 * audio.SampleRate
	if diff := len(samples) - want; diff < -audio.SampleRate/100 || diff > audio.SampleRate/100 {
		t.Fatalf("expected about %d samples, got %d", want, len(samples))
	}
	var peak float32
	for _, s := range samples {
		if s > 1 || s < -1 {
			t.Fatalf("sample out of range: %v", s)
		}
		peak = max(peak, s)
	}
	if peak < 0.3 {
		t.Fatalf("expected tone to survive resampling, peak=%v", peak)
	}
}

func TestDecodePCM_Deterministic(t *testing.T) {
	d := NewDecoder()
	input := pcm16WAV(t, 22050, 1, 1.5)

	first, err := d.DecodePCM(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.DecodePCM(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("length differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between runs", i)
		}
	}
}

func TestDecodePCM_NotMedia(t *testing.T) {
	_, err := NewDecoder().DecodePCM([]byte("definitely not a media file"))
	if err == nil {
		t.Fatal("expected error for non-media input")
	}
	if !errors.Is(err, audio.ErrOpenInput) && !errors.Is(err, audio.ErrStreamInfo) && !errors.Is(err, audio.ErrNoAudioStream) {
		t.Fatalf("unexpected error kind: %v", err)
	}
}

func TestDecodePCM_ContainerWithoutAudio(t *testing.T) {
	subtitles := []byte("1\n00:00:00,000 --> 00:00:01,500\nhello there\n\n2\n00:00:02,000 --> 00:00:03,000\nbye\n\n")

	samples, err := NewDecoder().DecodePCM(subtitles)
	if !errors.Is(err, audio.ErrNoAudioStream) {
		t.Fatalf("expected ErrNoAudioStream, got %v", err)
	}
	if samples != nil {
		t.Fatalf("expected no samples, got %d", len(samples))
	}
}

var errDiskGone = errors.New("input/output error")

func TestDecode_ReadErrorIsFatal(t *testing.T) {
	input := pcm16WAV(t, 44100, 2, 5)
	r := newMemoryReader(input)
	failAt := int64(len(input) * 3 / 4)
	read := func(b []byte) (int, error) {
		if r.pos >= failAt {
			return 0, errDiskGone
		}
		if rest := failAt - r.pos; int64(len(b)) > rest {
			b = b[:rest]
		}
		return r.Read(b)
	}

	samples, err := decode(ffmpegRead(read), r.Seek, len(input))
	if !errors.Is(err, audio.ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
	if samples != nil {
		t.Fatalf("expected no partial samples, got %d", len(samples))
	}
}
