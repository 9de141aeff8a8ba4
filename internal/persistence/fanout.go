package persistence

import (
	"context"
	"log/slog"
	"sync"
)

// Fanout mirrors one request's output to persistence on a best-effort basis.
// Failures never reach the caller; at most one warning is logged per request.
type Fanout struct {
	kind   Kind
	stream Stream

	mu       sync.Mutex
	broken   bool
	warned   bool
	finished sync.Once
}

// OpenFanout opens a stream of the given kind. The stream outlives
// cancellation of ctx so that chunks written before a client disconnect
// are still flushed.
func OpenFanout(ctx context.Context, client Client, kind Kind) *Fanout {
	f := &Fanout{kind: kind}
	if client == nil {
		f.broken = true
		return f
	}

	ctx = context.WithoutCancel(ctx)
	var (
		stream Stream
		err    error
	)
	switch kind {
	case KindSummary:
		stream, err = client.OpenSummaryStream(ctx)
	default:
		stream, err = client.OpenTranscriptStream(ctx)
	}
	if err != nil {
		f.broken = true
		f.warn("unable to establish connection!", err)
		return f
	}
	f.stream = stream
	return f
}

func (f *Fanout) Write(chunk Chunk) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken {
		return
	}
	if err := f.stream.Write(chunk); err != nil {
		f.broken = true
		f.warn("persistence stream failed", err)
	}
}

// Finish closes the stream and waits for the acknowledgement. Safe to call
// more than once; only the first call has an effect.
func (f *Fanout) Finish() {
	f.finished.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.stream == nil {
			return
		}
		err := f.stream.CloseAndWait()
		if err == nil {
			return
		}
		if f.warned {
			slog.Debug("persistence stream finished with error", "kind", f.kind, "error", err)
			return
		}
		f.warn("persistence stream did not complete", err)
	})
}

// Degraded reports whether writes are being dropped.
func (f *Fanout) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.broken
}

func (f *Fanout) warn(msg string, err error) {
	if f.warned {
		return
	}
	f.warned = true
	slog.Warn("Cannot persist "+f.kind.noun()+", "+msg, "kind", f.kind, "error", err)
}
