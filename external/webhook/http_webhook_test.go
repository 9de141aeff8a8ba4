package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foxseedlab/mojiokoshin-worker/internal/webhook"
)

func TestSendResult_EmptyWebhookURL(t *testing.T) {
	sender := NewHTTPSender("")
	if err := sender.SendResult(context.Background(), webhook.ResultPayload{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSendResult_Success(t *testing.T) {
	var got webhook.ResultPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	err := sender.SendResult(context.Background(), webhook.ResultPayload{
		SchemaVersion: webhook.ResultSchemaVersion,
		Kind:          webhook.ResultKindTranscript,
		TranscriptID:  "t-1",
		SegmentCount:  2,
		Segments:      []string{"hello", "world"},
		Text:          "hello world",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.TranscriptID != "t-1" || got.Kind != "transcript" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.Text != "hello world" || len(got.Segments) != 2 {
		t.Fatalf("unexpected transcript: %+v", got)
	}
}

func TestSendResult_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	if err := sender.SendResult(context.Background(), webhook.ResultPayload{}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
