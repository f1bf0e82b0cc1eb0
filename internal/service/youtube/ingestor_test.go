package youtube

import (
	"PodcastGenerator/internal/config"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestIngestor(run func(ctx context.Context, name string, args ...string) error) *Ingestor {
	in := NewIngestor(config.Defaults().Tools, zap.NewNop().Sugar())
	in.run = run
	return in
}

// argAfter возвращает значение, следующее за флагом flag.
func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("media"), 0o600); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestDownloadProducesMonoWAV(t *testing.T) {
	var videoPath string
	in := newTestIngestor(func(ctx context.Context, name string, args ...string) error {
		switch name {
		case "yt-dlp":
			videoPath = argAfter(args, "-o")
			touch(t, videoPath+".wav") // yt-dlp дописывает расширение
		case "ffmpeg":
			touch(t, args[len(args)-1])
		default:
			t.Fatalf("unexpected tool %s", name)
		}
		return nil
	})

	mono, err := in.Download(context.Background(), "https://youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer os.Remove(mono)

	if !strings.HasSuffix(mono, "_mono.wav") {
		t.Errorf("mono path = %s", mono)
	}
	if _, err := os.Stat(mono); err != nil {
		t.Errorf("mono file missing: %v", err)
	}
	// промежуточный стерео-wav удалён
	if _, err := os.Stat(videoPath + ".wav"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("intermediate wav %s.wav still exists", videoPath)
	}
}

func TestDownloadUniquePathsPerRun(t *testing.T) {
	seen := map[string]bool{}
	in := newTestIngestor(func(ctx context.Context, name string, args ...string) error {
		if name == "yt-dlp" {
			p := argAfter(args, "-o")
			if seen[p] {
				t.Errorf("path %s reused across runs", p)
			}
			seen[p] = true
			touch(t, p+".wav")
		}
		if name == "ffmpeg" {
			touch(t, args[len(args)-1])
		}
		return nil
	})

	for i := 0; i < 3; i++ {
		mono, err := in.Download(context.Background(), "https://youtube.com/watch?v=abc")
		if err != nil {
			t.Fatalf("Download: %v", err)
		}
		os.Remove(mono)
	}
}

func TestDownloadCleansUpWhenExtractionFails(t *testing.T) {
	var videoPath string
	in := newTestIngestor(func(ctx context.Context, name string, args ...string) error {
		if name == "yt-dlp" {
			videoPath = argAfter(args, "-o")
			touch(t, videoPath)
			touch(t, videoPath+".wav")
			return nil
		}
		return errors.New("ffmpeg exploded")
	})

	_, err := in.Download(context.Background(), "https://youtube.com/watch?v=abc")
	if err == nil {
		t.Fatal("want error when downmix fails")
	}
	if !strings.Contains(err.Error(), "youtube download failed") {
		t.Errorf("err = %v, want wrapped download failure", err)
	}
	for _, p := range []string{videoPath, videoPath + ".wav", videoPath + "_mono.wav"} {
		if _, statErr := os.Stat(p); !errors.Is(statErr, os.ErrNotExist) {
			t.Errorf("partial file %s left behind", p)
		}
	}
}

func TestDownloadCleansUpWhenDownloadFails(t *testing.T) {
	var videoPath string
	in := newTestIngestor(func(ctx context.Context, name string, args ...string) error {
		videoPath = argAfter(args, "-o")
		touch(t, videoPath) // частично скачанный контейнер
		return errors.New("network down")
	})

	_, err := in.Download(context.Background(), "https://youtube.com/watch?v=abc")
	if err == nil {
		t.Fatal("want error when download fails")
	}
	if _, statErr := os.Stat(videoPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("partial download %s left behind", videoPath)
	}
}
