package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/foxseedlab/mojiokoshin-worker/internal/completion"
	openai "github.com/sashabaranov/go-openai"
)

const (
	readChunkSize   = 4096
	errorBodyLimit  = 1024
	chatCompletions = "/v1/chat/completions"
)

// OpenAIClient streams chat completions from any OpenAI-compatible server.
// The streaming path is read by hand so that arbitrary chunking of the
// event stream is handled by completion.Reassembler.
type OpenAIClient struct {
	endpoint string
	token    string
	http     *http.Client
	api      *openai.Client
}

func NewOpenAIClient(endpoint, token string, httpClient *http.Client) completion.Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	endpoint = strings.TrimRight(endpoint, "/")

	cfg := openai.DefaultConfig(token)
	cfg.BaseURL = endpoint + "/v1"
	cfg.HTTPClient = httpClient

	return &OpenAIClient{
		endpoint: endpoint,
		token:    token,
		http:     httpClient,
		api:      openai.NewClientWithConfig(cfg),
	}
}

func (c *OpenAIClient) Models(ctx context.Context) ([]string, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (c *OpenAIClient) Stream(ctx context.Context, req completion.Request, onDelta func(content string) error) error {
	body, err := json.Marshal(toChatRequest(req))
	if err != nil {
		return fmt.Errorf("marshal completion request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+chatCompletions, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("completion request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return fmt.Errorf("%w: %d %s", completion.ErrBadStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	r := completion.NewReassembler(func(payload string) error {
		return dispatchChunk(payload, onDelta)
	})
	buf := make([]byte, readChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			done, err := r.Feed(buf[:n])
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
		if errors.Is(readErr, io.EOF) {
			if !r.Done() {
				slog.Debug("completion stream ended without [DONE]", "pending_bytes", len(r.Pending()))
			}
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read completion stream: %w", readErr)
		}
	}
}

// dispatchChunk decodes one streamed chunk. Chunks that fail to parse or
// carry no choices are logged and skipped.
func dispatchChunk(payload string, onDelta func(content string) error) error {
	var chunk openai.ChatCompletionStreamResponse
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		slog.Warn("Unsupported OpenAI stream message", "error", err, "payload", payload)
		return nil
	}
	if len(chunk.Choices) == 0 {
		slog.Debug("completion chunk without choices", "id", chunk.ID)
		return nil
	}
	content := chunk.Choices[0].Delta.Content
	if content == "" {
		return nil
	}
	return onDelta(content)
}

func toChatRequest(req completion.Request) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	temperature := req.Temperature
	if temperature == 0 {
		// go-openai omits a zero temperature.
		temperature = math.SmallestNonzeroFloat32
	}
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: temperature,
		Stream:      true,
	}
}
