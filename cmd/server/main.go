package main

import (
	"PodcastGenerator/internal/config"
	"PodcastGenerator/internal/server"
	"PodcastGenerator/internal/service/audio"
	"PodcastGenerator/internal/service/podcast"
	"PodcastGenerator/internal/service/stt"
	"PodcastGenerator/internal/service/stt/whisper"
	"PodcastGenerator/internal/service/tts/gemini"
	"PodcastGenerator/internal/service/youtube"
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// HTTP API генератора подкастов: POST /generate-podcast, POST /convert-youtube,
// GET /health, GET /.
func main() {
	cfg := config.NewConfig()

	var addr string
	flag.StringVar(&addr, "addr", cfg.BindAddr, "адрес HTTP API, напр. 0.0.0.0:8000")
	flag.Parse()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	sugar.Infow("Starting podcast API",
		"addr", addr,
		"api_key_configured", cfg.Gemini.APIKey != "",
	)

	// Каждый компонент конвейера собирается здесь один раз и передаётся явно;
	// глобального состояния между запросами нет.
	synth := gemini.New(cfg.Gemini, sugar)
	transcoder := audio.NewTranscoder(cfg.Tools.FFmpegPath, sugar)
	ingestor := youtube.NewIngestor(cfg.Tools, sugar)
	transcriber := stt.NewTranscriber(whisper.New(cfg.Tools), cfg.Split, sugar)
	pipeline := podcast.New(synth, transcoder, ingestor, transcriber, sugar)

	handler := server.NewHandler(pipeline, func() bool {
		return strings.TrimSpace(cfg.Gemini.APIKey) != ""
	}, sugar)

	srv := server.New(addr, handler, sugar)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		sugar.Errorw("failed to start server", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on Ctrl+C / SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	if err := srv.Stop(context.Background()); err != nil {
		sugar.Warnw("shutdown error", "error", err)
	}
	sugar.Infow("server stopped")
}
