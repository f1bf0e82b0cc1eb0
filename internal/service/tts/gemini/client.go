package gemini

import (
	"PodcastGenerator/internal/config"
	"PodcastGenerator/internal/service/audio"
	"PodcastGenerator/internal/service/tts"
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Фиксированная пара голосов для двух спикеров подкаста.
// Намеренно не конфигурируется: весь конвейер рассчитан на этот формат диалога.
const (
	speakerOne      = "Speaker 1"
	speakerOneVoice = "Zephyr"
	speakerTwo      = "Speaker 2"
	speakerTwoVoice = "Puck"
)

const promptTemplate = "Please read aloud the following in a podcast interview style:\n%s"

// Client реализует мультиспикерный синтез речи через Gemini TTS
// (streamGenerateContent). Ответ — SSE-поток бинарных фрагментов; клиент
// вычитывает его целиком и возвращает один WAV-буфер.
type Client struct {
	http   *http.Client
	cfg    config.GeminiTTSConfig
	logger *zap.SugaredLogger
}

func New(cfg config.GeminiTTSConfig, logger *zap.SugaredLogger) *Client {
	return &Client{http: http.DefaultClient, cfg: cfg, logger: logger}
}

// Структуры запроса покрывают только используемые поля generateContent.
type requestPayload struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature        float64      `json:"temperature"`
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

type speechConfig struct {
	MultiSpeakerVoiceConfig multiSpeakerVoiceConfig `json:"multiSpeakerVoiceConfig"`
}

type multiSpeakerVoiceConfig struct {
	SpeakerVoiceConfigs []speakerVoiceConfig `json:"speakerVoiceConfigs"`
}

type speakerVoiceConfig struct {
	Speaker     string      `json:"speaker"`
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// streamChunk — один SSE-фрагмент ответа; интересуют только inlineData-части.
type streamChunk struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Synthesize выполняет один потоковый запрос к Gemini TTS и возвращает WAV.
// Отсутствие ключа — ошибка конфигурации (tts.ErrNotConfigured), не ретраится.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, tts.ErrNotConfigured
	}

	rp := requestPayload{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: fmt.Sprintf(promptTemplate, text)}},
		}},
		GenerationConfig: generationConfig{
			Temperature:        c.cfg.Temperature,
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				MultiSpeakerVoiceConfig: multiSpeakerVoiceConfig{
					SpeakerVoiceConfigs: []speakerVoiceConfig{
						{Speaker: speakerOne, VoiceConfig: voiceConfig{prebuiltVoiceConfig{speakerOneVoice}}},
						{Speaker: speakerTwo, VoiceConfig: voiceConfig{prebuiltVoiceConfig{speakerTwoVoice}}},
					},
				},
			},
		},
	}

	body, err := json.Marshal(&rp)
	if err != nil {
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return nil, fmt.Errorf("audio generation failed: gemini tts status=%d, body=%s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	combined, mimeType, err := c.consumeStream(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}
	if len(combined) == 0 {
		return nil, errors.New("no audio generated")
	}

	if c.logger != nil {
		c.logger.Infow("gemini tts stream completed",
			"mime", mimeType, "bytes", len(combined), "took", time.Since(started).String())
	}

	// Бэкенд отдаёт сырые PCM-фрагменты; если заявленный MIME не WAV-контейнер,
	// оборачиваем байты в WAV сами.
	if !strings.Contains(strings.ToLower(mimeType), "wav") {
		combined = audio.FrameWAV(combined, audio.ParseMimeParams(mimeType))
	}
	return combined, nil
}

// consumeStream жадно вычитывает SSE-поток: конкатенирует все аудио-фрагменты
// в порядке прихода и запоминает MIME-тип первого из них.
func (c *Client) consumeStream(r io.Reader) ([]byte, string, error) {
	var combined []byte
	var mimeType string

	scanner := bufio.NewScanner(r)
	// Строки с base64-аудио бывают крупными
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return nil, "", fmt.Errorf("decode stream chunk: %w", err)
		}
		if len(chunk.Candidates) == 0 || chunk.Candidates[0].Content == nil {
			continue
		}
		for _, p := range chunk.Candidates[0].Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, "", fmt.Errorf("decode inline audio: %w", err)
			}
			combined = append(combined, raw...)
			if mimeType == "" {
				mimeType = p.InlineData.MimeType
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("read stream: %w", err)
	}
	return combined, mimeType, nil
}
