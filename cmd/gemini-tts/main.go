package main

import (
	"PodcastGenerator/internal/config"
	"PodcastGenerator/internal/service/audio"
	"PodcastGenerator/internal/service/tts/gemini"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Тестовый скрипт для проверки мультиспикерного Gemini TTS: синтезирует
// текст двумя голосами и сохраняет готовый MP3.
// Пример запуска:
//
//	go run ./cmd/gemini-tts -text "Speaker 1: Hello. Speaker 2: Hi there!" -o podcast.mp3
func main() {
	cfg := config.NewConfig()

	var (
		text    string
		output  string
		timeout time.Duration
	)
	flag.StringVar(&text, "text", "Speaker 1: Welcome to the show. Speaker 2: It's great to be here.", "текст подкаста (реплики Speaker 1/Speaker 2)")
	flag.StringVar(&output, "o", "podcast.mp3", "имя выходного MP3-файла")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "таймаут запроса синтеза")
	flag.Parse()

	// Логгер
	zl, _ := zap.NewDevelopment()
	logger := zl.Sugar()
	defer zl.Sync() // flush

	if cfg.Gemini.APIKey == "" {
		fmt.Println("Ошибка: не задан GEMINI_API_KEY (укажите в .env или окружении).")
		os.Exit(1)
	}

	client := gemini.New(cfg.Gemini, logger)
	transcoder := audio.NewTranscoder(cfg.Tools.FFmpegPath, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	wavData, err := client.Synthesize(ctx, text)
	if err != nil {
		logger.Errorw("Gemini TTS synthesize failed", "error", err)
		os.Exit(1)
	}

	mp3Data, err := transcoder.WAVToMP3(ctx, wavData)
	if err != nil {
		logger.Errorw("MP3 transcode failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(output, mp3Data, 0o644); err != nil {
		logger.Errorw("failed to write output", "path", output, "error", err)
		os.Exit(1)
	}
	logger.Infow("podcast saved", "path", output, "bytes", len(mp3Data))
}
