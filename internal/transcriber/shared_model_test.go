package transcriber

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type overlapEngine struct {
	inFlight   atomic.Int32
	overlapped atomic.Bool
	calls      atomic.Int32
	segments   []string
	err        error
	closed     bool
}

func (e *overlapEngine) Process(_ context.Context, _ []float32, onSegment func(text string)) error {
	if e.inFlight.Add(1) > 1 {
		e.overlapped.Store(true)
	}
	defer e.inFlight.Add(-1)
	e.calls.Add(1)
	time.Sleep(time.Millisecond)
	for _, s := range e.segments {
		onSegment(s)
	}
	return e.err
}

func (e *overlapEngine) Close() error {
	e.closed = true
	return nil
}

func TestInfer_ForwardsSegmentsInOrder(t *testing.T) {
	m := NewSharedModel(&overlapEngine{segments: []string{"a", "b", "c"}})

	var got []string
	err := m.Infer(context.Background(), make([]float32, 16), func(text string) error {
		got = append(got, text)
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestInfer_NoOverlappingCalls(t *testing.T) {
	engine := &overlapEngine{segments: []string{"x"}}
	m := NewSharedModel(engine)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 5 {
				_ = m.Infer(context.Background(), nil, func(string) error { return nil })
			}
		})
	}
	wg.Wait()

	if engine.overlapped.Load() {
		t.Fatal("engine was entered by more than one caller at a time")
	}
	if engine.calls.Load() != 40 {
		t.Fatalf("expected 40 calls, got %d", engine.calls.Load())
	}
}

func TestInfer_EngineError(t *testing.T) {
	want := errors.New("inference failed")
	m := NewSharedModel(&overlapEngine{err: want})

	err := m.Infer(context.Background(), nil, func(string) error { return nil })
	if !errors.Is(err, want) {
		t.Fatalf("expected engine error, got %v", err)
	}
}

func TestInfer_SinkErrorStopsForwarding(t *testing.T) {
	want := errors.New("client gone")
	m := NewSharedModel(&overlapEngine{segments: []string{"a", "b", "c"}})

	calls := 0
	err := m.Infer(context.Background(), nil, func(string) error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected sink to be called once, got %d", calls)
	}
}

func TestClose_ClosesEngine(t *testing.T) {
	engine := &overlapEngine{}
	if err := NewSharedModel(engine).Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !engine.closed {
		t.Fatal("expected engine to be closed")
	}
}
