package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool   `env:"DEBUG_MODE"` // Режим дебага
	BindAddr  string `env:"BIND_ADDR"`  // Адрес HTTP API, напр. 0.0.0.0:8000

	Gemini GeminiTTSConfig // Конфигурация синтеза речи (Gemini TTS)
	Tools  ToolsConfig     // Пути к внешним бинарям (ffmpeg, yt-dlp, whisper)
	Split  SplitConfig     // Политика разрезания аудио по тишине
}

// GeminiTTSConfig конфигурация для мультиспикерного синтеза речи через Gemini TTS.
type GeminiTTSConfig struct {
	APIKey string `env:"GEMINI_API_KEY"` // Ключ берём из .env/ENV. Если пуст — при синтезе будет ошибка конфигурации
	Model  string `env:"GEMINI_TTS_MODEL"`
	// Базовый endpoint Generative Language API; переопределяется только в тестах
	Endpoint    string  `env:"GEMINI_TTS_ENDPOINT"`
	Temperature float64 `env:"GEMINI_TTS_TEMPERATURE"`
}

// ToolsConfig пути к внешним инструментам конвейера.
// Все шаги с медиафайлами делегируются сабпроцессам, как и в остальной части стека.
type ToolsConfig struct {
	FFmpegPath   string `env:"FFMPEG_PATH"`   // Перекодирование WAV→MP3 и сведение в моно
	YtDlpPath    string `env:"YTDLP_PATH"`    // Скачивание аудио из YouTube
	WhisperPath  string `env:"WHISPER_PATH"`  // Оффлайн-распознавание речи (whisper.cpp CLI)
	WhisperModel string `env:"WHISPER_MODEL"` // Путь к файлу модели; пусто — дефолт бинаря
	WhisperLang  string `env:"WHISPER_LANG"`  // Язык распознавания, напр. en
}

// SplitConfig эвристика разрезания записи по тишине (настроена под речь).
type SplitConfig struct {
	MinSilence        time.Duration `env:"SPLIT_MIN_SILENCE"`         // Минимальная длительность паузы
	KeepSilence       time.Duration `env:"SPLIT_KEEP_SILENCE"`        // Сколько тишины оставлять по краям фрагмента
	ThresholdOffsetDB float64       `env:"SPLIT_THRESHOLD_OFFSET_DB"` // Порог = средняя громкость − offset
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env и переменными окружения.
func Defaults() *Config {
	return &Config{
		DebugMode: false,
		BindAddr:  "0.0.0.0:8000",
		Gemini: GeminiTTSConfig{
			APIKey:      "", // ключ берём из .env/ENV, если пусто — ошибка при синтезе
			Model:       "gemini-2.5-pro-preview-tts",
			Endpoint:    "https://generativelanguage.googleapis.com",
			Temperature: 1.0,
		},
		Tools: ToolsConfig{
			FFmpegPath:  "ffmpeg",
			YtDlpPath:   "yt-dlp",
			WhisperPath: "whisper-cli",
			WhisperLang: "en",
		},
		Split: SplitConfig{
			MinSilence:        500 * time.Millisecond,
			KeepSilence:       500 * time.Millisecond,
			ThresholdOffsetDB: 14,
		},
	}
}

// NewConfig загружает конфигурацию приложения: дефолты, затем .env и окружение.
// Флаги CLI регистрируются в конкретных main, а не здесь.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := Defaults()
	_ = env.Parse(cfg)

	return cfg
}
