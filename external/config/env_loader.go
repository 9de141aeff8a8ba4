package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/mojiokoshin-worker/internal/config"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Env      string `env:"ENV" envDefault:"production"`
	LogDebug bool   `env:"LOG_DEBUG" envDefault:"false"`

	ListenAddress string `env:"GRPC_LISTEN_ADDRESS" envDefault:"0.0.0.0:50051"`

	TranscriberEngine string `env:"TRANSCRIBER_ENGINE" envDefault:"whisper"`
	WhisperModelPath  string `env:"WHISPER_MODEL_PATH" envDefault:"models/ggml-tiny.bin"`
	WhisperLanguage   string `env:"WHISPER_LANGUAGE" envDefault:"auto"`
	WhisperThreads    int    `env:"WHISPER_THREADS" envDefault:"0"`

	GoogleCloudProjectID       string `env:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleCloudCredentialsJSON string `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleCloudSpeechLocation  string `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"long"`
	GoogleCloudSpeechLanguage  string `env:"GOOGLE_CLOUD_SPEECH_LANGUAGE" envDefault:"en-US"`

	PersistenceDriver  string `env:"PERSISTENCE_DRIVER" envDefault:"grpc"`
	PersistenceAddress string `env:"GRPC_PERSISTENCE_ADDRESS" envDefault:"0.0.0.0:50052"`
	DatabaseURL        string `env:"DATABASE_URL"`

	CompletionEndpoint string `env:"OPENAI_ENDPOINT" envDefault:"http://localhost:8080"`
	CompletionToken    string `env:"OPENAI_TOKEN"`

	ResultWebhookURL string `env:"RESULT_WEBHOOK_URL"`
}

// Load reads an optional .env file from the working directory, then the
// process environment, which takes precedence.
func Load() (*internalconfig.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		LogDebug:                   raw.LogDebug,
		ListenAddress:              raw.ListenAddress,
		TranscriberEngine:          raw.TranscriberEngine,
		WhisperModelPath:           raw.WhisperModelPath,
		WhisperLanguage:            raw.WhisperLanguage,
		WhisperThreads:             raw.WhisperThreads,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
		GoogleCloudSpeechLanguage:  raw.GoogleCloudSpeechLanguage,
		PersistenceDriver:          raw.PersistenceDriver,
		PersistenceAddress:         raw.PersistenceAddress,
		DatabaseURL:                raw.DatabaseURL,
		CompletionEndpoint:         raw.CompletionEndpoint,
		CompletionToken:            raw.CompletionToken,
		ResultWebhookURL:           raw.ResultWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
