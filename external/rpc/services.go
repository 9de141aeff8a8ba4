package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	transcriberServiceName = "transcriber.Transcriber"
	summarizerServiceName  = "summarizer.Summarizer"
	persistenceServiceName = "persistence.Persistence"
)

type TranscriberService interface {
	Transcribe(grpc.BidiStreamingServer[AudioChunk, Transcript]) error
	Heartbeat(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

type SummarizerService interface {
	Summarize(*Prompt, grpc.ServerStreamingServer[Summary]) error
	Models(context.Context, *emptypb.Empty) (*Models, error)
	Heartbeat(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

type PersistenceService interface {
	PersistTranscript(grpc.ClientStreamingServer[PersistChunk, emptypb.Empty]) error
	PersistSummary(grpc.ClientStreamingServer[PersistChunk, emptypb.Empty]) error
}

var TranscriberServiceDesc = grpc.ServiceDesc{
	ServiceName: transcriberServiceName,
	HandlerType: (*TranscriberService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "heartbeat",
			Handler: unaryHandler("/"+transcriberServiceName+"/heartbeat", func(srv any, ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error) {
				return srv.(TranscriberService).Heartbeat(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName: "transcribe",
			Handler: func(srv any, stream grpc.ServerStream) error {
				return srv.(TranscriberService).Transcribe(&grpc.GenericServerStream[AudioChunk, Transcript]{ServerStream: stream})
			},
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "transcriber.proto",
}

var SummarizerServiceDesc = grpc.ServiceDesc{
	ServiceName: summarizerServiceName,
	HandlerType: (*SummarizerService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "models",
			Handler: unaryHandler("/"+summarizerServiceName+"/models", func(srv any, ctx context.Context, in *emptypb.Empty) (*Models, error) {
				return srv.(SummarizerService).Models(ctx, in)
			}),
		},
		{
			MethodName: "heartbeat",
			Handler: unaryHandler("/"+summarizerServiceName+"/heartbeat", func(srv any, ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error) {
				return srv.(SummarizerService).Heartbeat(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName: "summarize",
			Handler: func(srv any, stream grpc.ServerStream) error {
				in := new(Prompt)
				if err := stream.RecvMsg(in); err != nil {
					return err
				}
				return srv.(SummarizerService).Summarize(in, &grpc.GenericServerStream[Prompt, Summary]{ServerStream: stream})
			},
			ServerStreams: true,
		},
	},
	Metadata: "summarizer.proto",
}

var PersistenceServiceDesc = grpc.ServiceDesc{
	ServiceName: persistenceServiceName,
	HandlerType: (*PersistenceService)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName: "persistTranscript",
			Handler: func(srv any, stream grpc.ServerStream) error {
				return srv.(PersistenceService).PersistTranscript(&grpc.GenericServerStream[PersistChunk, emptypb.Empty]{ServerStream: stream})
			},
			ClientStreams: true,
		},
		{
			StreamName: "persistSummary",
			Handler: func(srv any, stream grpc.ServerStream) error {
				return srv.(PersistenceService).PersistSummary(&grpc.GenericServerStream[PersistChunk, emptypb.Empty]{ServerStream: stream})
			},
			ClientStreams: true,
		},
	},
	Metadata: "persistence.proto",
}

func unaryHandler[Req, Res any](fullMethod string, call func(srv any, ctx context.Context, in *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		})
	}
}
