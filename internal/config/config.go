package config

import (
	"fmt"
	"slices"
)

const (
	TranscriberEngineWhisper     = "whisper"
	TranscriberEngineCloudSpeech = "cloud-speech"

	PersistenceDriverGRPC     = "grpc"
	PersistenceDriverPostgres = "postgres"
	PersistenceDriverNone     = "none"
)

type Config struct {
	Env      string
	LogDebug bool

	ListenAddress string

	TranscriberEngine string
	WhisperModelPath  string
	WhisperLanguage   string
	WhisperThreads    int

	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string
	GoogleCloudSpeechLanguage  string

	PersistenceDriver  string
	PersistenceAddress string
	DatabaseURL        string

	CompletionEndpoint string
	CompletionToken    string

	ResultWebhookURL string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if !slices.Contains([]string{TranscriberEngineWhisper, TranscriberEngineCloudSpeech}, c.TranscriberEngine) {
		return fmt.Errorf("TRANSCRIBER_ENGINE must be %q or %q, got %q", TranscriberEngineWhisper, TranscriberEngineCloudSpeech, c.TranscriberEngine)
	}
	if !slices.Contains([]string{PersistenceDriverGRPC, PersistenceDriverPostgres, PersistenceDriverNone}, c.PersistenceDriver) {
		return fmt.Errorf("PERSISTENCE_DRIVER must be one of grpc, postgres, none, got %q", c.PersistenceDriver)
	}
	if c.WhisperThreads < 0 {
		return fmt.Errorf("WHISPER_THREADS must not be negative, got %d", c.WhisperThreads)
	}
	if c.TranscriberEngine == TranscriberEngineWhisper && c.WhisperModelPath == "" {
		return fmt.Errorf("WHISPER_MODEL_PATH is required when TRANSCRIBER_ENGINE=%s", TranscriberEngineWhisper)
	}
	if c.TranscriberEngine == TranscriberEngineCloudSpeech {
		if c.GoogleCloudProjectID == "" || c.GoogleCloudCredentialsJSON == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID and GOOGLE_CLOUD_CREDENTIALS_JSON are required when TRANSCRIBER_ENGINE=%s", TranscriberEngineCloudSpeech)
		}
	}
	if c.PersistenceDriver == PersistenceDriverGRPC && c.PersistenceAddress == "" {
		return fmt.Errorf("GRPC_PERSISTENCE_ADDRESS is required when PERSISTENCE_DRIVER=%s", PersistenceDriverGRPC)
	}
	if c.PersistenceDriver == PersistenceDriverPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when PERSISTENCE_DRIVER=%s", PersistenceDriverPostgres)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "GRPC_LISTEN_ADDRESS", value: c.ListenAddress},
		{name: "OPENAI_ENDPOINT", value: c.CompletionEndpoint},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) DebugLogging() bool {
	return c.LogDebug || c.IsDevelopment()
}
