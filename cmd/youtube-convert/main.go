package main

import (
	"PodcastGenerator/internal/config"
	"PodcastGenerator/internal/service/audio"
	"PodcastGenerator/internal/service/podcast"
	"PodcastGenerator/internal/service/stt"
	"PodcastGenerator/internal/service/stt/whisper"
	"PodcastGenerator/internal/service/tts/gemini"
	"PodcastGenerator/internal/service/youtube"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Автономный скрипт: целиком прогоняет YouTube-конвейер
// (скачивание → расшифровка → синтез → MP3) и сохраняет результат.
// Пример запуска:
//
//	go run ./cmd/youtube-convert -url https://www.youtube.com/watch?v=...
func main() {
	cfg := config.NewConfig()

	var (
		url    string
		output string
	)
	flag.StringVar(&url, "url", "", "URL YouTube-ролика")
	flag.StringVar(&output, "o", "", "имя выходного MP3-файла")
	flag.Parse()

	if url == "" && flag.NArg() > 0 {
		url = flag.Arg(0)
	}

	zl, _ := zap.NewDevelopment()
	logger := zl.Sugar()
	defer zl.Sync() // flush

	if url == "" {
		fmt.Println("Ошибка: укажите URL ролика (-url или позиционным аргументом).")
		os.Exit(1)
	}

	synth := gemini.New(cfg.Gemini, logger)
	transcoder := audio.NewTranscoder(cfg.Tools.FFmpegPath, logger)
	ingestor := youtube.NewIngestor(cfg.Tools, logger)
	transcriber := stt.NewTranscriber(whisper.New(cfg.Tools), cfg.Split, logger)
	pipeline := podcast.New(synth, transcoder, ingestor, transcriber, logger)

	mp3Data, err := pipeline.FromYouTube(context.Background(), url)
	if err != nil {
		logger.Errorw("youtube conversion failed", "error", err)
		os.Exit(1)
	}

	if output == "" {
		output = fmt.Sprintf("youtube_podcast_%s.mp3", time.Now().Format("20060102_150405"))
	}
	if err := os.WriteFile(output, mp3Data, 0o644); err != nil {
		logger.Errorw("failed to write output", "path", output, "error", err)
		os.Exit(1)
	}
	logger.Infow("podcast saved", "path", output, "bytes", len(mp3Data))
}
