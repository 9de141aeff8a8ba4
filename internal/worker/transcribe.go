package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
	"github.com/foxseedlab/mojiokoshin-worker/internal/correlation"
	"github.com/foxseedlab/mojiokoshin-worker/internal/persistence"
	"github.com/foxseedlab/mojiokoshin-worker/internal/transcriber"
	"github.com/foxseedlab/mojiokoshin-worker/internal/webhook"
)

// WindowSamples is the number of samples passed to the model per inference
// call: 30 seconds of audio.
const WindowSamples = audio.SampleRate * 30

type AudioChunk struct {
	Data   []byte
	UserID string
}

type Transcript struct {
	ID   string
	Text string
}

type TranscribeStream interface {
	Context() context.Context
	Recv() (*AudioChunk, error)
	Send(*Transcript) error
}

type Transcriber struct {
	decoder     audio.Decoder
	model       *transcriber.SharedModel
	persistence persistence.Client
	notifier    *notifier

	now   func() time.Time
	newID func() string
}

func NewTranscriber(decoder audio.Decoder, model *transcriber.SharedModel, pc persistence.Client, wh webhook.Sender) *Transcriber {
	return &Transcriber{
		decoder:     decoder,
		model:       model,
		persistence: pc,
		notifier:    &notifier{sender: wh},
		now:         time.Now,
		newID:       correlation.NewID,
	}
}

// Transcribe reads the whole media file from stream, decodes it and streams
// back one Transcript per recognized segment. Segments already sent stay
// valid when a later window fails.
func (s *Transcriber) Transcribe(stream TranscribeStream) error {
	ctx := stream.Context()
	fan := persistence.OpenFanout(ctx, s.persistence, persistence.KindTranscript)
	defer fan.Finish()

	id := s.newID()
	startedAt := s.now()

	data, userID, err := receiveMedia(stream)
	if err != nil {
		return err
	}
	slog.Info("finished reading transcribe request", "transcription_id", id, "user_id", userID, "bytes", len(data))

	samples, err := s.decoder.DecodePCM(data)
	if err != nil {
		slog.Error("failed to decode pcm32 from input", "error", err, "transcription_id", id)
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(samples) == 0 {
		slog.Warn("pcm32 samples are empty", "transcription_id", id)
		return ErrEmptyAudio
	}
	slog.Info("decoded pcm samples", "transcription_id", id, "samples", len(samples))

	var segments []string
	sink := func(text string) error {
		if err := stream.Send(&Transcript{ID: id, Text: text}); err != nil {
			return fmt.Errorf("%w: %w", ErrSend, err)
		}
		fan.Write(persistence.Chunk{TranscriptID: id, UserID: userID, Text: text, Time: s.now()})
		segments = append(segments, text)
		return nil
	}

	window := 0
	for samplesInWindow := range slices.Chunk(samples, WindowSamples) {
		if err := s.model.Infer(ctx, samplesInWindow, sink); err != nil {
			if errors.Is(err, ErrSend) {
				slog.Info("caller stream closed during transcription", "error", err, "transcription_id", id, "window", window)
				return err
			}
			slog.Error("failed to transcribe chunk", "error", err, "transcription_id", id, "window", window, "samples", len(samplesInWindow))
			return fmt.Errorf("%w: window %d: %w", ErrTranscribe, window, err)
		}
		slog.Debug("transcribed chunk", "transcription_id", id, "window", window, "samples", len(samplesInWindow))
		window++
	}

	slog.Info("transcribe ok", "transcription_id", id, "windows", window, "segments", len(segments), "persistence_degraded", fan.Degraded())
	s.notifier.notify(ctx, buildResultPayload(resultInput{
		kind:         webhook.ResultKindTranscript,
		transcriptID: id,
		userID:       userID,
		startedAt:    startedAt,
		endedAt:      s.now(),
		segments:     segments,
		separator:    " ",
	}))
	return nil
}

// receiveMedia concatenates every chunk until the caller half-closes. The
// last non-empty user id wins.
func receiveMedia(stream TranscribeStream) ([]byte, string, error) {
	var (
		buf    bytes.Buffer
		userID string
	)
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), userID, nil
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrReceive, err)
		}
		buf.Write(chunk.Data)
		if chunk.UserID != "" {
			userID = chunk.UserID
		}
	}
}

// WaitNotifications blocks until every result webhook started so far has
// finished.
func (s *Transcriber) WaitNotifications() {
	s.notifier.wait()
}
