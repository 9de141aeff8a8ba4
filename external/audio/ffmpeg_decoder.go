//go:build ffmpeg

package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/asticode/go-astiav"
	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
)

const ioBufferSize = 4096

type FFmpegDecoder struct{}

func NewDecoder() audio.Decoder {
	astiav.SetLogLevel(astiav.LogLevelError)
	return &FFmpegDecoder{}
}

// DecodePCM demuxes data from memory, decodes the best audio stream and
// resamples it to mono float32 at audio.SampleRate. Every handle acquired
// here is released in reverse order before returning.
func (d *FFmpegDecoder) DecodePCM(data []byte) ([]float32, error) {
	r := newMemoryReader(data)
	return decode(ffmpegRead(r.Read), r.Seek, len(data))
}

func decode(read astiav.IOContextReadFunc, seek astiav.IOContextSeekFunc, size int) ([]float32, error) {
	ioCtx, err := astiav.AllocIOContext(ioBufferSize, false, read, seek, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: io context: %w", audio.ErrAllocation, err)
	}
	defer ioCtx.Free()

	fc := astiav.AllocFormatContext()
	if fc == nil {
		return nil, fmt.Errorf("%w: format context", audio.ErrAllocation)
	}
	defer fc.Free()
	fc.SetPb(ioCtx)

	if err := fc.OpenInput("", nil, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpenInput, err)
	}
	defer fc.CloseInput()

	if err := fc.FindStreamInfo(nil); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrStreamInfo, err)
	}

	stream, codec, err := bestAudioStream(fc)
	if err != nil {
		return nil, err
	}

	cc := astiav.AllocCodecContext(codec)
	if cc == nil {
		return nil, fmt.Errorf("%w: codec context", audio.ErrAllocation)
	}
	defer cc.Free()

	if err := stream.CodecParameters().ToCodecContext(cc); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrCodecParameters, err)
	}
	if err := cc.Open(codec, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrCodecOpen, err)
	}

	swr := astiav.AllocSoftwareResampleContext()
	if swr == nil {
		return nil, fmt.Errorf("%w: resampler", audio.ErrAllocation)
	}
	defer swr.Free()

	pkt := astiav.AllocPacket()
	if pkt == nil {
		return nil, fmt.Errorf("%w: packet", audio.ErrAllocation)
	}
	defer pkt.Free()

	frame := astiav.AllocFrame()
	if frame == nil {
		return nil, fmt.Errorf("%w: frame", audio.ErrAllocation)
	}
	defer frame.Free()

	out := astiav.AllocFrame()
	if out == nil {
		return nil, fmt.Errorf("%w: output frame", audio.ErrAllocation)
	}
	defer out.Free()

	p := &pipeline{cc: cc, swr: swr, frame: frame, out: out}
	for {
		if err := fc.ReadFrame(pkt); err != nil {
			if errors.Is(err, astiav.ErrEof) {
				break
			}
			return nil, fmt.Errorf("%w: %w", audio.ErrRead, err)
		}
		if pkt.StreamIndex() != stream.Index() {
			pkt.Unref()
			continue
		}
		err := cc.SendPacket(pkt)
		pkt.Unref()
		if err != nil {
			slog.Debug("skipping undecodable packet", "error", err)
			continue
		}
		if err := p.drainDecoder(); err != nil {
			return nil, err
		}
	}

	if err := cc.SendPacket(nil); err == nil {
		if err := p.drainDecoder(); err != nil {
			return nil, err
		}
	}
	if err := p.flushResampler(); err != nil {
		return nil, err
	}

	slog.Debug("decoded audio",
		"stream_index", stream.Index(),
		"codec", codec.Name(),
		"input_bytes", size,
		"samples", len(p.samples))
	return p.samples, nil
}

// bestAudioStream asks the demuxer for its preferred audio stream.
func bestAudioStream(fc *astiav.FormatContext) (*astiav.Stream, *astiav.Codec, error) {
	stream, codec, err := fc.FindBestStream(astiav.MediaTypeAudio, -1, -1)
	switch {
	case errors.Is(err, astiav.ErrStreamNotFound):
		return nil, nil, audio.ErrNoAudioStream
	case errors.Is(err, astiav.ErrDecoderNotFound):
		return nil, nil, audio.ErrNoDecoder
	case err != nil:
		return nil, nil, fmt.Errorf("%w: %w", audio.ErrNoAudioStream, err)
	}
	if codec == nil {
		return nil, nil, audio.ErrNoDecoder
	}
	return stream, codec, nil
}

type pipeline struct {
	cc      *astiav.CodecContext
	swr     *astiav.SoftwareResampleContext
	frame   *astiav.Frame
	out     *astiav.Frame
	samples []float32
}

func (p *pipeline) drainDecoder() error {
	for {
		if err := p.cc.ReceiveFrame(p.frame); err != nil {
			if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
				return nil
			}
			return fmt.Errorf("failed to receive decoded frame: %w", err)
		}
		err := p.convert(p.frame)
		p.frame.Unref()
		if err != nil {
			return err
		}
	}
}

func (p *pipeline) flushResampler() error {
	for {
		if err := p.convert(nil); err != nil {
			return err
		}
		if p.out.NbSamples() == 0 {
			return nil
		}
	}
}

// convert resamples src, or drains buffered resampler output when src is nil.
func (p *pipeline) convert(src *astiav.Frame) error {
	p.out.Unref()
	p.out.SetChannelLayout(astiav.ChannelLayoutMono)
	p.out.SetSampleFormat(astiav.SampleFormatFlt)
	p.out.SetSampleRate(audio.SampleRate)

	if err := p.swr.ConvertFrame(src, p.out); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrResampler, err)
	}
	n := p.out.NbSamples()
	if n == 0 {
		return nil
	}
	b, err := p.out.Data().Bytes(1)
	if err != nil {
		return fmt.Errorf("%w: read samples: %w", audio.ErrResampler, err)
	}
	for i := range n {
		p.samples = append(p.samples, math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return nil
}

// ffmpegRead reports io.EOF the way the demuxer expects it.
func ffmpegRead(read func([]byte) (int, error)) astiav.IOContextReadFunc {
	return func(b []byte) (int, error) {
		n, err := read(b)
		if errors.Is(err, io.EOF) {
			return 0, astiav.ErrEof
		}
		return n, err
	}
}
