package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ListenAddress != "0.0.0.0:50051" {
		t.Fatalf("unexpected listen address: %s", cfg.ListenAddress)
	}
	if cfg.PersistenceAddress != "0.0.0.0:50052" {
		t.Fatalf("unexpected persistence address: %s", cfg.PersistenceAddress)
	}
	if cfg.WhisperModelPath != "models/ggml-tiny.bin" {
		t.Fatalf("unexpected model path: %s", cfg.WhisperModelPath)
	}
	if cfg.TranscriberEngine != "whisper" || cfg.PersistenceDriver != "grpc" {
		t.Fatalf("unexpected engine/driver: %s/%s", cfg.TranscriberEngine, cfg.PersistenceDriver)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GRPC_LISTEN_ADDRESS", "127.0.0.1:6000")
	t.Setenv("OPENAI_ENDPOINT", "http://llm.internal:9000")
	t.Setenv("OPENAI_TOKEN", "secret")
	t.Setenv("LOG_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ListenAddress != "127.0.0.1:6000" {
		t.Fatalf("unexpected listen address: %s", cfg.ListenAddress)
	}
	if cfg.CompletionEndpoint != "http://llm.internal:9000" || cfg.CompletionToken != "secret" {
		t.Fatalf("unexpected completion settings: %s %s", cfg.CompletionEndpoint, cfg.CompletionToken)
	}
	if !cfg.DebugLogging() {
		t.Fatal("expected debug logging")
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PERSISTENCE_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown persistence driver")
	}
}
