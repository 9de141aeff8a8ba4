package rpc

import (
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// maxRecvMsgSize bounds a single AudioChunk, not the whole upload.
const maxRecvMsgSize = 16 << 20

func NewServer(ts *TranscriberServer, ss *SummarizerServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		ServerCodec(),
		grpc.MaxRecvMsgSize(maxRecvMsgSize),
		grpc.ChainUnaryInterceptor(unaryServerLogging()),
		grpc.ChainStreamInterceptor(streamServerLogging()),
	}, opts...)
	server := grpc.NewServer(opts...)
	server.RegisterService(&TranscriberServiceDesc, ts)
	server.RegisterService(&SummarizerServiceDesc, ss)
	return server
}

// NewClientConn dials target lazily with plaintext credentials and this
// package's codec.
func NewClientConn(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(codec{})),
		grpc.WithChainUnaryInterceptor(unaryClientLogging()),
		grpc.WithChainStreamInterceptor(streamClientLogging()),
	}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", target, err)
	}
	slog.Debug("grpc client created", "target", target)
	return conn, nil
}

// ServerCodec returns the server option that installs this package's codec.
func ServerCodec() grpc.ServerOption {
	return grpc.ForceServerCodec(codec{})
}
