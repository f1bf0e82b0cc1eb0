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

// Текст по умолчанию для generate-text без аргументов
const defaultText = "Speaker 1: Welcome to the show. Speaker 2: It's great to be here."

const usage = `Usage:
  podcast generate-text [TEXT|FILEPATH] [-o OUTPUT]
  podcast generate-youtube URL [-o OUTPUT]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer logger.Sync() // flush

	pipeline := buildPipeline(cfg, sugar)

	switch os.Args[1] {
	case "generate-text":
		err = generateFromText(pipeline, os.Args[2:])
	case "generate-youtube":
		err = generateFromYouTube(pipeline, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		sugar.Errorw("podcast generation failed", "error", err)
		os.Exit(1)
	}
}

func buildPipeline(cfg *config.Config, sugar *zap.SugaredLogger) *podcast.Pipeline {
	synth := gemini.New(cfg.Gemini, sugar)
	transcoder := audio.NewTranscoder(cfg.Tools.FFmpegPath, sugar)
	ingestor := youtube.NewIngestor(cfg.Tools, sugar)
	transcriber := stt.NewTranscriber(whisper.New(cfg.Tools), cfg.Split, sugar)
	return podcast.New(synth, transcoder, ingestor, transcriber, sugar)
}

// generateFromText генерирует подкаст из строки или файла.
// Если аргумент — существующий путь, текст читается из файла.
func generateFromText(pipeline *podcast.Pipeline, args []string) error {
	fs := flag.NewFlagSet("generate-text", flag.ExitOnError)
	output := fs.String("o", "", "имя выходного MP3-файла")
	text, err := parseWithPositional(fs, args)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Println("No text provided. Using default text.")
		text = defaultText
	} else if _, err := os.Stat(text); err == nil {
		fmt.Printf("Reading text from file: %s\n", text)
		data, err := os.ReadFile(text)
		if err != nil {
			return err
		}
		text = string(data)
	}

	fmt.Println("Generating podcast from text...")
	mp3Data, err := pipeline.FromText(context.Background(), text)
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = fmt.Sprintf("podcast_%s.mp3", time.Now().Format("20060102_150405"))
	}
	return saveMP3(out, mp3Data)
}

// generateFromYouTube генерирует подкаст из YouTube-ролика. Очистка
// скачанного файла происходит внутри конвейера и логируется, не глотается.
func generateFromYouTube(pipeline *podcast.Pipeline, args []string) error {
	fs := flag.NewFlagSet("generate-youtube", flag.ExitOnError)
	output := fs.String("o", "", "имя выходного MP3-файла")
	url, err := parseWithPositional(fs, args)
	if err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("generate-youtube: URL is required")
	}

	fmt.Printf("Generating podcast from YouTube URL: %s\n", url)
	mp3Data, err := pipeline.FromYouTube(context.Background(), url)
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = fmt.Sprintf("youtube_podcast_%s.mp3", time.Now().Format("20060102_150405"))
	}
	return saveMP3(out, mp3Data)
}

// parseWithPositional разбирает флаги и один позиционный аргумент,
// допуская флаги как до, так и после него.
func parseWithPositional(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() == 0 {
		return "", nil
	}
	positional := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return "", err
	}
	return positional, nil
}

func saveMP3(fileName string, data []byte) error {
	if err := os.WriteFile(fileName, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("File saved to: %s\n", fileName)
	fmt.Println("Podcast generated successfully.")
	return nil
}
