package completion

import (
	"errors"
	"testing"
)

func collect(t *testing.T) (*Reassembler, *[]string) {
	t.Helper()
	var got []string
	return NewReassembler(func(payload string) error {
		got = append(got, payload)
		return nil
	}), &got
}

func TestFeed_CompleteLines(t *testing.T) {
	r, got := collect(t)

	done, err := r.Feed([]byte("data: {\"a\":1}\n\ndata:{\"b\":2}\r\n"))
	if err != nil || done {
		t.Fatalf("unexpected result done=%v err=%v", done, err)
	}
	if len(*got) != 2 || (*got)[0] != `{"a":1}` || (*got)[1] != `{"b":2}` {
		t.Fatalf("unexpected payloads: %q", *got)
	}
	if r.Pending() != "" {
		t.Fatalf("expected empty buffer, got %q", r.Pending())
	}
}

func TestFeed_SplitAcrossChunks(t *testing.T) {
	r, got := collect(t)

	for _, chunk := range []string{"da", "ta: {\"x\"", ":1}", "\n"} {
		if _, err := r.Feed([]byte(chunk)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(*got) != 1 || (*got)[0] != `{"x":1}` {
		t.Fatalf("unexpected payloads: %q", *got)
	}
}

func TestFeed_KeepsUnterminatedTail(t *testing.T) {
	r, got := collect(t)

	if _, err := r.Feed([]byte("data: one\ndata: tw")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("expected one payload, got %q", *got)
	}
	if r.Pending() != "data: tw" {
		t.Fatalf("unexpected pending tail: %q", r.Pending())
	}
}

func TestFeed_IgnoresNonDataLines(t *testing.T) {
	r, got := collect(t)

	if _, err := r.Feed([]byte(": keep-alive\nevent: message\nid: 7\ndata: ok\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*got) != 1 || (*got)[0] != "ok" {
		t.Fatalf("unexpected payloads: %q", *got)
	}
}

func TestFeed_DoneSentinel(t *testing.T) {
	r, got := collect(t)

	done, err := r.Feed([]byte("data: a\ndata: [DONE]\ndata: b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done || !r.Done() {
		t.Fatal("expected stream to be done")
	}
	if len(*got) != 1 || (*got)[0] != "a" {
		t.Fatalf("unexpected payloads: %q", *got)
	}

	done, err = r.Feed([]byte("data: c\n"))
	if err != nil || !done {
		t.Fatalf("expected no-op after done, got done=%v err=%v", done, err)
	}
	if len(*got) != 1 {
		t.Fatalf("expected no payloads after done, got %q", *got)
	}
}

func TestFeed_HandlerError(t *testing.T) {
	want := errors.New("send failed")
	r := NewReassembler(func(string) error { return want })

	if _, err := r.Feed([]byte("data: a\n")); !errors.Is(err, want) {
		t.Fatalf("expected handler error, got %v", err)
	}
}
