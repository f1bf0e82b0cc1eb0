package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestTranscoder(t *testing.T, run CommandRunner) *Transcoder {
	t.Helper()
	tr := NewTranscoder("ffmpeg", zap.NewNop().Sugar())
	tr.tempDir = t.TempDir()
	tr.run = run
	return tr
}

func TestWAVToMP3(t *testing.T) {
	wavData := FrameWAV([]byte{1, 2, 3, 4}, MimeParams{BitsPerSample: 16, Rate: 24000})
	var seenPath string

	tr := newTestTranscoder(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		// второй аргумент после -i — временный wav; он должен существовать
		// и содержать исходный буфер в момент вызова кодека
		for i, a := range args {
			if a == "-i" && i+1 < len(args) {
				seenPath = args[i+1]
			}
		}
		got, err := os.ReadFile(seenPath)
		if err != nil {
			t.Fatalf("temp wav not readable during transcode: %v", err)
		}
		if !bytes.Equal(got, wavData) {
			t.Error("temp wav content differs from input buffer")
		}
		return []byte("mp3-bytes"), nil
	})

	out, err := tr.WAVToMP3(context.Background(), wavData)
	if err != nil {
		t.Fatalf("WAVToMP3: %v", err)
	}
	if string(out) != "mp3-bytes" {
		t.Errorf("output = %q, want codec stdout", out)
	}
	if _, err := os.Stat(seenPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp wav %s still exists after success", seenPath)
	}
}

func TestWAVToMP3CleansUpOnFailure(t *testing.T) {
	tr := newTestTranscoder(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("codec exploded")
	})

	_, err := tr.WAVToMP3(context.Background(), []byte("wav"))
	if err == nil {
		t.Fatal("want error from failing codec")
	}

	entries, readErr := os.ReadDir(tr.tempDir)
	if readErr != nil {
		t.Fatalf("read temp dir: %v", readErr)
	}
	for _, e := range entries {
		t.Errorf("leftover temp file after failure: %s", filepath.Join(tr.tempDir, e.Name()))
	}
}
