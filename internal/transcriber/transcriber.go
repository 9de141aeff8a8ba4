package transcriber

import "context"

// Engine is a loaded speech recognition model. Implementations are not safe
// for concurrent use; callers go through SharedModel.
type Engine interface {
	Process(ctx context.Context, samples []float32, onSegment func(text string)) error
	Close() error
}

type SegmentSink func(text string) error
