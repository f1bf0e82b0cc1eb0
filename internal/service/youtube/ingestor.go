package youtube

import (
	"PodcastGenerator/internal/config"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ingestor скачивает аудиодорожку YouTube-ролика и приводит её к моно WAV.
// Скачивание и извлечение аудио делегированы yt-dlp, сведение в моно — ffmpeg.
type Ingestor struct {
	cfg    config.ToolsConfig
	logger *zap.SugaredLogger

	// run подменяется в тестах; по умолчанию — запуск сабпроцесса
	run func(ctx context.Context, name string, args ...string) error
}

func NewIngestor(cfg config.ToolsConfig, logger *zap.SugaredLogger) *Ingestor {
	return &Ingestor{cfg: cfg, logger: logger, run: runTool}
}

// Download скачивает аудио по url и возвращает путь к моно WAV-файлу.
// Владение файлом переходит вызывающему: он решает, когда удалить.
// Три пути на запуск уникальны (uuid), коллизий между параллельными
// запросами нет. При любой ошибке все частичные файлы удаляются.
func (in *Ingestor) Download(ctx context.Context, url string) (string, error) {
	tempDir := os.TempDir()
	videoPath := filepath.Join(tempDir, uuid.NewString()+".mp4")
	wavPath := videoPath + ".wav"
	monoWavPath := videoPath + "_mono.wav"

	cleanup := func() {
		for _, p := range []string{videoPath, wavPath, monoWavPath} {
			if _, err := os.Stat(p); err == nil {
				os.Remove(p)
			}
		}
	}

	in.logger.Infow("downloading youtube audio", "url", url)

	// Лучшая доступная аудиодорожка, извлечённая в WAV.
	// yt-dlp сам дописывает расширение к -o, получается <videoPath>.wav
	if err := in.run(ctx, in.cfg.YtDlpPath,
		"-f", "bestaudio/best",
		"-x", "--audio-format", "wav",
		"--audio-quality", "192",
		"-o", videoPath,
		url,
	); err != nil {
		cleanup()
		return "", fmt.Errorf("youtube download failed: %w", err)
	}

	// Распознаванию речи нужен один канал
	if err := in.run(ctx, in.cfg.FFmpegPath,
		"-y", "-i", wavPath,
		"-ac", "1",
		monoWavPath,
	); err != nil {
		cleanup()
		return "", fmt.Errorf("youtube download failed: %w", err)
	}

	if err := os.Remove(wavPath); err != nil {
		in.logger.Warnw("не удалось удалить промежуточный wav", "path", wavPath, "error", err)
	}

	in.logger.Infow("youtube audio ready", "path", monoWavPath)
	return monoWavPath, nil
}

func runTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			lines := strings.Split(msg, "\n")
			return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(lines[len(lines)-1]))
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
