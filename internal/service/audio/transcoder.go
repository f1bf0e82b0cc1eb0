package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Transcoder конвертирует WAV в MP3 через внешний ffmpeg.
// Буфер пишется во временный файл, результат кодирования собирается
// в память, временный файл удаляется на любом исходе.
type Transcoder struct {
	ffmpegPath string
	tempDir    string
	logger     *zap.SugaredLogger

	// run подменяется в тестах; по умолчанию — запуск сабпроцесса
	run CommandRunner
}

// CommandRunner запускает внешнюю команду и возвращает её stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func NewTranscoder(ffmpegPath string, logger *zap.SugaredLogger) *Transcoder {
	return &Transcoder{
		ffmpegPath: ffmpegPath,
		tempDir:    os.TempDir(),
		logger:     logger,
		run:        runCommand,
	}
}

// WAVToMP3 перекодирует WAV-байты в MP3-байты.
func (t *Transcoder) WAVToMP3(ctx context.Context, wavData []byte) ([]byte, error) {
	f, err := os.CreateTemp(t.tempDir, "podcast-*.wav")
	if err != nil {
		return nil, fmt.Errorf("MP3 conversion failed: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(wavData); err != nil {
		f.Close()
		return nil, fmt.Errorf("MP3 conversion failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("MP3 conversion failed: %w", err)
	}

	// ffmpeg декодирует WAV из файла и отдаёт MP3 в stdout
	out, err := t.run(ctx, t.ffmpegPath,
		"-y", "-i", f.Name(),
		"-f", "mp3",
		"pipe:1",
	)
	if err != nil {
		return nil, fmt.Errorf("MP3 conversion failed: %w", err)
	}
	if t.logger != nil {
		t.logger.Infow("wav transcoded to mp3", "in_bytes", len(wavData), "out_bytes", len(out))
	}
	return out, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, lastLine(msg))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// lastLine возвращает последнюю строку вывода утилиты — как правило,
// именно она содержит причину падения ffmpeg/yt-dlp.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
