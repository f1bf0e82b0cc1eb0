package whisper

import (
	"PodcastGenerator/internal/config"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Recognizer оффлайн-распознавание речи через whisper.cpp CLI.
// Никаких сетевых вызовов: модель и бинарь локальные.
type Recognizer struct {
	cfg config.ToolsConfig
}

func New(cfg config.ToolsConfig) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// Recognize распознаёт один WAV-файл и возвращает текст (stdout бинаря).
func (r *Recognizer) Recognize(ctx context.Context, wavPath string) (string, error) {
	args := []string{
		"--no-timestamps",
		"--no-prints",
		"--language", r.cfg.WhisperLang,
	}
	if r.cfg.WhisperModel != "" {
		args = append(args, "--model", r.cfg.WhisperModel)
	}
	args = append(args, "--file", wavPath)

	cmd := exec.CommandContext(ctx, r.cfg.WhisperPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("whisper: %w: %s", err, msg)
		}
		return "", fmt.Errorf("whisper: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
