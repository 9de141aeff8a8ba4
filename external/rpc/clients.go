package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type TranscriberClient struct {
	cc grpc.ClientConnInterface
}

func NewTranscriberClient(cc grpc.ClientConnInterface) *TranscriberClient {
	return &TranscriberClient{cc: cc}
}

func (c *TranscriberClient) Transcribe(ctx context.Context, opts ...grpc.CallOption) (grpc.BidiStreamingClient[AudioChunk, Transcript], error) {
	stream, err := c.cc.NewStream(ctx, &TranscriberServiceDesc.Streams[0], "/"+transcriberServiceName+"/transcribe", opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[AudioChunk, Transcript]{ClientStream: stream}, nil
}

func (c *TranscriberClient) Heartbeat(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+transcriberServiceName+"/heartbeat", &emptypb.Empty{}, &emptypb.Empty{}, opts...)
}

type SummarizerClient struct {
	cc grpc.ClientConnInterface
}

func NewSummarizerClient(cc grpc.ClientConnInterface) *SummarizerClient {
	return &SummarizerClient{cc: cc}
}

func (c *SummarizerClient) Summarize(ctx context.Context, in *Prompt, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Summary], error) {
	stream, err := c.cc.NewStream(ctx, &SummarizerServiceDesc.Streams[0], "/"+summarizerServiceName+"/summarize", opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Prompt, Summary]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *SummarizerClient) Models(ctx context.Context, opts ...grpc.CallOption) (*Models, error) {
	out := new(Models)
	if err := c.cc.Invoke(ctx, "/"+summarizerServiceName+"/models", &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SummarizerClient) Heartbeat(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+summarizerServiceName+"/heartbeat", &emptypb.Empty{}, &emptypb.Empty{}, opts...)
}

type PersistenceClient struct {
	cc grpc.ClientConnInterface
}

func NewPersistenceClient(cc grpc.ClientConnInterface) *PersistenceClient {
	return &PersistenceClient{cc: cc}
}

func (c *PersistenceClient) PersistTranscript(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[PersistChunk, emptypb.Empty], error) {
	return c.persist(ctx, 0, "persistTranscript", opts...)
}

func (c *PersistenceClient) PersistSummary(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[PersistChunk, emptypb.Empty], error) {
	return c.persist(ctx, 1, "persistSummary", opts...)
}

func (c *PersistenceClient) persist(ctx context.Context, desc int, method string, opts ...grpc.CallOption) (grpc.ClientStreamingClient[PersistChunk, emptypb.Empty], error) {
	stream, err := c.cc.NewStream(ctx, &PersistenceServiceDesc.Streams[desc], "/"+persistenceServiceName+"/"+method, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[PersistChunk, emptypb.Empty]{ClientStream: stream}, nil
}
