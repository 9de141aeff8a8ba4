package transcriber

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
)

func TestLinear16_ScalesAndClamps(t *testing.T) {
	got := linear16([]float32{0, 1, -1, 2, -2, 0.5})
	want := []int16{0, 32767, -32767, 32767, -32768, 16384}
	for i, w := range want {
		v := int16(binary.LittleEndian.Uint16(got[i*2:]))
		if v != w {
			t.Fatalf("sample %d: expected %d, got %d", i, w, v)
		}
	}
}

func TestCloudSpeechEngine_Process(t *testing.T) {
	var gotReq *speechpb.RecognizeRequest
	e := &CloudSpeechEngine{
		recognizer: "projects/p/locations/global/recognizers/_",
		language:   "en-US",
		model:      "long",
		recognize: func(_ context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			gotReq = req
			return &speechpb.RecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{
				{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "hello"}}},
				{},
				{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "world"}, {Transcript: "word"}}},
			}}, nil
		},
	}

	var segments []string
	err := e.Process(context.Background(), make([]float32, 320), func(text string) {
		segments = append(segments, text)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 || segments[0] != "hello" || segments[1] != "world" {
		t.Fatalf("unexpected segments: %v", segments)
	}
	if len(gotReq.GetContent()) != 640 {
		t.Fatalf("expected 640 bytes of audio, got %d", len(gotReq.GetContent()))
	}
	dc := gotReq.GetConfig().GetExplicitDecodingConfig()
	if dc.GetSampleRateHertz() != 16000 || dc.GetAudioChannelCount() != 1 {
		t.Fatalf("unexpected decoding config: %v", dc)
	}
}

func TestCloudSpeechEngine_ProcessError(t *testing.T) {
	e := &CloudSpeechEngine{
		recognize: func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	if err := e.Process(context.Background(), nil, func(string) {}); err == nil {
		t.Fatal("expected error")
	}
}
