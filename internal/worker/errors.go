package worker

import "errors"

var (
	ErrReceive    = errors.New("failed to receive request")
	ErrDecode     = errors.New("failed to decode PCM32")
	ErrEmptyAudio = errors.New("failed to retrieve PCM32 samples")
	ErrTranscribe = errors.New("failed to transcribe audio chunk")
	ErrCompletion = errors.New("failed to summarize")
	ErrModels     = errors.New("failed to retrieve models")
	// ErrSend marks a failed write to the caller's outbound stream.
	ErrSend = errors.New("failed to send response")
)
