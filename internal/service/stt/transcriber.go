package stt

import (
	"PodcastGenerator/internal/config"
	"PodcastGenerator/internal/service/audio"
	"PodcastGenerator/internal/service/media"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Маркеры нераспознанных фрагментов. Ошибка одного фрагмента не прерывает
// расшифровку: вместо текста в транскрипт попадает маркер, обработка идёт
// дальше. Падение — только если в итоге не распозналось вообще ничего.
const (
	Unintelligible     = "[unintelligible]"
	requestErrorFormat = "[request error: %v]"
)

// Transcriber разрезает моно WAV-запись по тишине и последовательно
// распознаёт фрагменты, склеивая результат в один транскрипт.
type Transcriber struct {
	rec    Recognizer
	split  config.SplitConfig
	logger *zap.SugaredLogger
}

func NewTranscriber(rec Recognizer, split config.SplitConfig, logger *zap.SugaredLogger) *Transcriber {
	return &Transcriber{rec: rec, split: split, logger: logger}
}

// Transcribe возвращает транскрипт файла wavPath.
// Фрагменты обрабатываются строго по порядку; временный файл каждого
// фрагмента удаляется независимо от исхода распознавания.
func (t *Transcriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	rec, err := audio.LoadWAV(wavPath)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	chunks := rec.SplitOnSilence(audio.SplitPolicy{
		MinSilence:        t.split.MinSilence,
		KeepSilence:       t.split.KeepSilence,
		ThresholdOffsetDB: t.split.ThresholdOffsetDB,
	})
	t.logger.Infow("recording split on silence",
		"duration", rec.Duration().String(), "chunks", len(chunks))

	wd, err := media.New(t.logger)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	defer wd.Close()

	var parts []string
	recognized := false
	for i, c := range chunks {
		text, marker, err := t.transcribeChunk(ctx, rec, c, wd.Path(fmt.Sprintf("chunk%d.wav", i+1)))
		if err != nil {
			return "", err
		}
		if marker {
			t.logger.Warnw("chunk not recognized", "chunk", i+1, "marker", text)
		} else {
			recognized = true
		}
		parts = append(parts, text)
	}

	transcript := strings.TrimSpace(strings.Join(parts, " "))
	if transcript == "" || !recognized {
		return "", errors.New("could not transcribe audio, or audio was unintelligible")
	}
	return transcript, nil
}

// transcribeChunk экспортирует один фрагмент во временный файл и распознаёт
// его. Возвращает текст либо маркер (marker=true); ошибка — только на экспорте.
func (t *Transcriber) transcribeChunk(ctx context.Context, rec *audio.Recording, c audio.Chunk, path string) (text string, marker bool, err error) {
	if err := rec.ExportChunk(c, path); err != nil {
		return "", false, fmt.Errorf("transcription failed: %w", err)
	}
	defer os.Remove(path)

	text, err = t.rec.Recognize(ctx, path)
	if err != nil {
		return fmt.Sprintf(requestErrorFormat, err), true, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Unintelligible, true, nil
	}
	return text, false, nil
}
