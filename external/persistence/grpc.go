package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/foxseedlab/mojiokoshin-worker/external/rpc"
	"github.com/foxseedlab/mojiokoshin-worker/internal/persistence"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// GRPCClient streams chunks to the remote persistence service.
type GRPCClient struct {
	client *rpc.PersistenceClient
	conn   *grpc.ClientConn
}

func NewGRPCClient(conn *grpc.ClientConn) *GRPCClient {
	return &GRPCClient{client: rpc.NewPersistenceClient(conn), conn: conn}
}

func (c *GRPCClient) OpenTranscriptStream(ctx context.Context) (persistence.Stream, error) {
	stream, err := c.client.PersistTranscript(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript persistence stream: %w", err)
	}
	return &grpcStream{stream: stream}, nil
}

func (c *GRPCClient) OpenSummaryStream(ctx context.Context) (persistence.Stream, error) {
	stream, err := c.client.PersistSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open summary persistence stream: %w", err)
	}
	return &grpcStream{stream: stream}, nil
}

func (c *GRPCClient) Shutdown() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

type grpcStream struct {
	stream grpc.ClientStreamingClient[rpc.PersistChunk, emptypb.Empty]
}

func (s *grpcStream) Write(chunk persistence.Chunk) error {
	return s.stream.Send(&rpc.PersistChunk{
		TranscriptID: chunk.TranscriptID,
		SummaryID:    chunk.SummaryID,
		UserID:       chunk.UserID,
		Text:         strings.ToValidUTF8(chunk.Text, "\uFFFD"),
		Time:         chunk.Time.Unix(),
	})
}

func (s *grpcStream) CloseAndWait() error {
	_, err := s.stream.CloseAndRecv()
	return err
}
