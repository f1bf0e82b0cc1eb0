package stt

import "context"

// Recognizer abstracts the offline speech recognition engine.
// Implementations transcribe one bounded WAV file per call.
type Recognizer interface {
	Recognize(ctx context.Context, wavPath string) (string, error)
}
