package completion

import (
	"context"
	"errors"
)

const (
	RoleDeveloper = "developer"
	RoleUser      = "user"
)

var ErrBadStatus = errors.New("completion endpoint returned non-success status")

type Message struct {
	Role    string
	Content string
}

type Request struct {
	Model       string
	Temperature float32
	Messages    []Message
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client interface {
	Models(ctx context.Context) ([]string, error)
	// Stream blocks until the completion finishes, the endpoint fails or
	// onDelta returns an error. onDelta is called once per content delta in
	// arrival order.
	Stream(ctx context.Context, req Request, onDelta func(content string) error) error
}
