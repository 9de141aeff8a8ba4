package rpc

import (
	"errors"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestPrompt_TemperatureIsFixed32(t *testing.T) {
	b, err := (&Prompt{Model: "m", Temperature: 0.25}).MarshalWire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var want []byte
	want = protowire.AppendTag(want, 1, protowire.BytesType)
	want = protowire.AppendString(want, "m")
	want = protowire.AppendTag(want, 2, protowire.Fixed32Type)
	want = protowire.AppendFixed32(want, math.Float32bits(0.25))
	if string(b) != string(want) {
		t.Fatalf("unexpected encoding: %x, want %x", b, want)
	}
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "hello")
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	var tr Transcript
	if err := tr.UnmarshalWire(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.ID != "" || tr.Text != "hello" {
		t.Fatalf("unexpected message: %+v", tr)
	}
}

func TestUnmarshal_Truncated(t *testing.T) {
	b := protowire.AppendTag(nil, 1, protowire.BytesType)
	b = append(b, 10, 'a')

	var s Summary
	if err := s.UnmarshalWire(b); err == nil {
		t.Fatal("expected error for truncated message")
	}
}

func TestAudioChunk_DataIsCopied(t *testing.T) {
	b, _ := (&AudioChunk{Data: []byte{1, 2, 3}}).MarshalWire()

	var c AudioChunk
	if err := c.UnmarshalWire(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b[len(b)-1] = 9
	if c.Data[2] != 3 {
		t.Fatal("expected decoded data not to alias the input buffer")
	}
}

func TestPersistChunk_RoundTrip(t *testing.T) {
	in := PersistChunk{TranscriptID: "t", SummaryID: "s", UserID: "u", Text: "hi", Time: 1767225600}
	b, _ := in.MarshalWire()

	var out PersistChunk
	if err := out.UnmarshalWire(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestUnmarshal_RejectsInvalidUTF8(t *testing.T) {
	b := protowire.AppendTag(nil, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte{0xff, 0xfe})

	var tr Transcript
	if err := tr.UnmarshalWire(b); !errors.Is(err, errInvalidUTF8) {
		t.Fatalf("expected errInvalidUTF8, got %v", err)
	}
}

func TestMarshal_RejectsInvalidUTF8(t *testing.T) {
	if _, err := (&Summary{Text: "ok \xc3"}).MarshalWire(); !errors.Is(err, errInvalidUTF8) {
		t.Fatalf("expected errInvalidUTF8, got %v", err)
	}
}

func TestAudioChunk_DataIsNotValidatedAsText(t *testing.T) {
	b, err := (&AudioChunk{Data: []byte{0xff, 0x00, 0xfe}}).MarshalWire()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var c AudioChunk
	if err := c.UnmarshalWire(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
