package podcast

import (
	"PodcastGenerator/internal/service/tts"
	"context"
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Transcoder перекодирует WAV-байты в MP3-байты.
type Transcoder interface {
	WAVToMP3(ctx context.Context, wavData []byte) ([]byte, error)
}

// Ingestor скачивает аудио по URL и возвращает путь к моно WAV-файлу.
type Ingestor interface {
	Download(ctx context.Context, url string) (string, error)
}

// Transcriber возвращает транскрипт WAV-файла.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
}

// Pipeline — последовательный конвейер генерации подкаста. Один запуск —
// строгая цепочка стадий без повторов и возобновления; отказ любой стадии
// терминален, последующие стадии не выполняются.
type Pipeline struct {
	synth       tts.Synthesizer
	transcoder  Transcoder
	ingestor    Ingestor
	transcriber Transcriber
	logger      *zap.SugaredLogger
}

func New(synth tts.Synthesizer, tr Transcoder, in Ingestor, st Transcriber, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{synth: synth, transcoder: tr, ingestor: in, transcriber: st, logger: logger}
}

// FromText генерирует MP3-подкаст из текста: synthesize → transcode.
func (p *Pipeline) FromText(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, stageErrf(KindValidation, "text input cannot be empty")
	}
	return p.produce(ctx, text)
}

// FromYouTube генерирует MP3-подкаст из ролика:
// ingest → transcribe → synthesize → transcode.
// Скачанный моно WAV удаляется в defer независимо от исхода.
func (p *Pipeline) FromYouTube(ctx context.Context, url string) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, stageErrf(KindValidation, "youtube URL cannot be empty")
	}

	audioFile, err := p.ingestor.Download(ctx, url)
	if err != nil {
		return nil, stageErr(KindDownload, err)
	}
	defer func() {
		if err := os.Remove(audioFile); err != nil {
			p.logger.Warnw("не удалось удалить скачанный файл", "path", audioFile, "error", err)
		} else {
			p.logger.Infow("cleaned up temporary file", "path", audioFile)
		}
	}()

	transcript, err := p.transcriber.Transcribe(ctx, audioFile)
	if err != nil {
		return nil, stageErr(KindTranscription, err)
	}
	p.logger.Infow("transcription complete", "chars", len(transcript))

	return p.produce(ctx, transcript)
}

// produce — общий хвост обоих конвейеров: синтез речи и перекодирование.
func (p *Pipeline) produce(ctx context.Context, text string) ([]byte, error) {
	wavData, err := p.synth.Synthesize(ctx, text)
	if err != nil {
		if errors.Is(err, tts.ErrNotConfigured) {
			return nil, stageErr(KindConfig, err)
		}
		return nil, stageErr(KindSynthesis, err)
	}

	mp3Data, err := p.transcoder.WAVToMP3(ctx, wavData)
	if err != nil {
		return nil, stageErr(KindTranscode, err)
	}
	return mp3Data, nil
}
