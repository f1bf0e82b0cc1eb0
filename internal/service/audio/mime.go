package audio

import (
	"strconv"
	"strings"
)

// MimeParams параметры сырого PCM-потока, закодированные в MIME-типе,
// напр. "audio/L16;rate=24000". Дефолты соответствуют выводу Gemini TTS.
type MimeParams struct {
	BitsPerSample int
	Rate          int
}

const (
	defaultBitsPerSample = 16
	defaultRate          = 24000
)

// ParseMimeParams извлекает битность и частоту дискретизации из MIME-строки.
// Любая некорректная часть молча заменяется дефолтом; функция никогда не падает.
func ParseMimeParams(mimeType string) MimeParams {
	p := MimeParams{BitsPerSample: defaultBitsPerSample, Rate: defaultRate}

	parts := strings.Split(mimeType, ";")
	for _, param := range parts {
		param = strings.TrimSpace(param)
		if strings.HasPrefix(strings.ToLower(param), "rate=") {
			if _, v, ok := strings.Cut(param, "="); ok {
				if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
					p.Rate = rate
				}
			}
		}
	}

	// Основной тип вида audio/L16: битность — число после первой 'L'
	mainType := strings.TrimSpace(parts[0])
	if _, v, ok := strings.Cut(mainType, "L"); ok {
		if bits, err := strconv.Atoi(v); err == nil && bits > 0 && bits%8 == 0 {
			p.BitsPerSample = bits
		}
	}

	return p
}
