package rpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/foxseedlab/mojiokoshin-worker/internal/worker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// toStatus reports every worker failure as Unavailable. Errors that already
// carry a gRPC status keep it.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Err()
	}
	return status.Error(codes.Unavailable, err.Error())
}

type TranscriberServer struct {
	transcriber *worker.Transcriber
}

var _ TranscriberService = (*TranscriberServer)(nil)

func NewTranscriberServer(t *worker.Transcriber) *TranscriberServer {
	return &TranscriberServer{transcriber: t}
}

func (s *TranscriberServer) Transcribe(stream grpc.BidiStreamingServer[AudioChunk, Transcript]) error {
	slog.Info("incoming transcribe request")
	return toStatus(s.transcriber.Transcribe(transcribeStream{stream: stream}))
}

func (s *TranscriberServer) Heartbeat(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	slog.Info("incoming transcriber heartbeat")
	return &emptypb.Empty{}, nil
}

type transcribeStream struct {
	stream grpc.BidiStreamingServer[AudioChunk, Transcript]
}

func (t transcribeStream) Context() context.Context {
	return t.stream.Context()
}

func (t transcribeStream) Recv() (*worker.AudioChunk, error) {
	chunk, err := t.stream.Recv()
	if err != nil {
		return nil, err
	}
	return &worker.AudioChunk{Data: chunk.Data, UserID: chunk.UserID}, nil
}

func (t transcribeStream) Send(tr *worker.Transcript) error {
	return t.stream.Send(&Transcript{ID: tr.ID, Text: validText(tr.Text)})
}

type SummarizerServer struct {
	summarizer *worker.Summarizer
}

var _ SummarizerService = (*SummarizerServer)(nil)

func NewSummarizerServer(s *worker.Summarizer) *SummarizerServer {
	return &SummarizerServer{summarizer: s}
}

func (s *SummarizerServer) Summarize(in *Prompt, stream grpc.ServerStreamingServer[Summary]) error {
	err := s.summarizer.Summarize(stream.Context(), worker.Prompt{
		Model:        in.Model,
		Temperature:  in.Temperature,
		Prompt:       in.Prompt,
		Transcript:   in.Transcript,
		TranscriptID: in.TranscriptID,
		UserID:       in.UserID,
	}, func(text string) error {
		return stream.Send(&Summary{Text: validText(text)})
	})
	return toStatus(err)
}

func (s *SummarizerServer) Models(ctx context.Context, _ *emptypb.Empty) (*Models, error) {
	slog.Info("incoming models request")
	models, err := s.summarizer.Models(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &Models{Models: models}, nil
}

func (s *SummarizerServer) Heartbeat(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	slog.Info("incoming summarizer heartbeat")
	return &emptypb.Empty{}, nil
}

// validText replaces byte sequences that are not UTF-8. Model output can end
// a segment in the middle of a multi-byte character.
func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}
