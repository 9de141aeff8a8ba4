package transcriber

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"cloud.google.com/go/auth/credentials"
	speech "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/foxseedlab/mojiokoshin-worker/internal/audio"
	"github.com/foxseedlab/mojiokoshin-worker/internal/transcriber"
	"google.golang.org/api/option"
)

const speechAPIEndpointPort = 443

type CloudSpeechConfig struct {
	ProjectID       string
	CredentialsJSON string
	Language        string
	Location        string
	Model           string
}

// CloudSpeechEngine recognizes each window with one synchronous Recognize
// call against Cloud Speech-to-Text v2.
type CloudSpeechEngine struct {
	recognizer string
	language   string
	model      string
	recognize  func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)
	closeFn    func() error
}

func NewCloudSpeechEngine(ctx context.Context, cfg CloudSpeechConfig) (transcriber.Engine, error) {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		CredentialsJSON: []byte(cfg.CredentialsJSON),
		Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
	})
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}
	opts := []option.ClientOption{
		option.WithAuthCredentials(creds),
	}
	if location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", location, speechAPIEndpointPort)))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	slog.Info("cloud speech engine ready", "location", location, "model", cfg.Model, "language", cfg.Language)
	return &CloudSpeechEngine{
		recognizer: fmt.Sprintf("projects/%s/locations/%s/recognizers/_", cfg.ProjectID, location),
		language:   cfg.Language,
		model:      strings.TrimSpace(cfg.Model),
		recognize: func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return client.Recognize(ctx, req)
		},
		closeFn: client.Close,
	}, nil
}

func (e *CloudSpeechEngine) Process(ctx context.Context, samples []float32, onSegment func(text string)) error {
	resp, err := e.recognize(ctx, &speechpb.RecognizeRequest{
		Recognizer: e.recognizer,
		Config: &speechpb.RecognitionConfig{
			Model:         e.model,
			LanguageCodes: []string{e.language},
			DecodingConfig: &speechpb.RecognitionConfig_ExplicitDecodingConfig{
				ExplicitDecodingConfig: &speechpb.ExplicitDecodingConfig{
					Encoding:          speechpb.ExplicitDecodingConfig_LINEAR16,
					SampleRateHertz:   audio.SampleRate,
					AudioChannelCount: audio.Channels,
				},
			},
			Features: &speechpb.RecognitionFeatures{EnableAutomaticPunctuation: true},
		},
		AudioSource: &speechpb.RecognizeRequest_Content{Content: linear16(samples)},
	})
	if err != nil {
		return fmt.Errorf("cloud speech recognize: %w", err)
	}
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 || alts[0].GetTranscript() == "" {
			continue
		}
		onSegment(alts[0].GetTranscript())
	}
	return nil
}

func (e *CloudSpeechEngine) Close() error {
	if e.closeFn == nil {
		return nil
	}
	return e.closeFn()
}

// linear16 encodes float samples in [-1, 1] as little-endian signed 16-bit PCM.
func linear16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := math.Round(float64(s) * math.MaxInt16)
		v = max(math.MinInt16, min(math.MaxInt16, v))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}
