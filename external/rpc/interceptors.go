package rpc

import (
	"context"
	"log/slog"
	"path"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func splitMethod(fullMethod string) (string, string) {
	return path.Dir(fullMethod)[1:], path.Base(fullMethod)
}

func unaryServerLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		service, method := splitMethod(info.FullMethod)
		resp, err := handler(ctx, req)
		logCall(ctx, slog.LevelWarn, "gRPC call", service, method, start, err)
		return resp, err
	}
}

func streamServerLogging() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		service, method := splitMethod(info.FullMethod)
		slog.Debug("gRPC stream started", "service", service, "method", method)
		err := handler(srv, ss)
		logCall(ss.Context(), slog.LevelWarn, "gRPC stream", service, method, start, err)
		return err
	}
}

func unaryClientLogging() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		service, name := splitMethod(method)
		err := invoker(ctx, method, req, reply, cc, opts...)
		logCall(ctx, slog.LevelDebug, "gRPC client call", service, name, start, err, "target", cc.Target())
		return err
	}
}

func streamClientLogging() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		start := time.Now()
		service, name := splitMethod(method)
		stream, err := streamer(ctx, desc, cc, method, opts...)
		logCall(ctx, slog.LevelDebug, "gRPC client stream", service, name, start, err, "target", cc.Target())
		return stream, err
	}
}

// logCall reports failures at failLevel and successes at Debug.
func logCall(ctx context.Context, failLevel slog.Level, msg, service, method string, start time.Time, err error, extra ...any) {
	attrs := append([]any{
		"service", service,
		"method", method,
		"duration_ms", time.Since(start).Milliseconds(),
	}, extra...)
	if err != nil {
		st := status.Convert(err)
		attrs = append(attrs, "status", st.Code().String(), "error", st.Message())
		slog.Log(ctx, failLevel, msg+" failed", attrs...)
		return
	}
	attrs = append(attrs, "status", "OK")
	slog.DebugContext(ctx, msg+" completed", attrs...)
}
