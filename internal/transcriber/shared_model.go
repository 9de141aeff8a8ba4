package transcriber

import (
	"context"
	"sync"
)

// SharedModel serializes access to one Engine across requests. The lock is
// held for a single Infer call only, so concurrent requests interleave at
// window granularity.
type SharedModel struct {
	mu     sync.Mutex
	engine Engine
}

func NewSharedModel(engine Engine) *SharedModel {
	return &SharedModel{engine: engine}
}

// Infer runs one window through the engine and hands each recognized segment
// to sink in order. After the first sink error the remaining segments of the
// window are dropped and that error is returned once the engine finishes.
func (m *SharedModel) Infer(ctx context.Context, window []float32, sink SegmentSink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sinkErr error
	err := m.engine.Process(ctx, window, func(text string) {
		if sinkErr != nil {
			return
		}
		sinkErr = sink(text)
	})
	if err != nil {
		return err
	}
	return sinkErr
}

func (m *SharedModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Close()
}
