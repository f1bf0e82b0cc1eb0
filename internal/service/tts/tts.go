package tts

import (
	"context"
	"errors"
)

// ErrNotConfigured возвращается (обёрнутым), когда у синтезатора нет учётных
// данных. Фронтенды отличают эту ошибку конфигурации от ошибок бэкенда.
var ErrNotConfigured = errors.New("GEMINI_API_KEY not configured")

// Synthesizer абстракция TTS. Метод синтезирует речь по тексту и возвращает
// готовый WAV-буфер целиком; частичных результатов не бывает.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
