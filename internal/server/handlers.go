package server

import (
	"PodcastGenerator/internal/service/podcast"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	serviceName    = "Podcast Audio Generator API"
	serviceVersion = "1.0.0"

	// Тела запросов — только маленький JSON
	maxBodyBytes = 1 << 20
)

// Generator — то, что умеет конвейер; в тестах подменяется фейком.
type Generator interface {
	FromText(ctx context.Context, text string) ([]byte, error)
	FromYouTube(ctx context.Context, url string) ([]byte, error)
}

// Handler обрабатывает HTTP-запросы API.
type Handler struct {
	pipeline         Generator
	apiKeyConfigured func() bool
	logger           *zap.SugaredLogger
}

func NewHandler(pipeline Generator, apiKeyConfigured func() bool, logger *zap.SugaredLogger) *Handler {
	return &Handler{pipeline: pipeline, apiKeyConfigured: apiKeyConfigured, logger: logger}
}

// Поля-указатели: отсутствие обязательного поля отличается от пустой строки
// (первое — 422 на разборе, второе — 400 на валидации конвейера).
type podcastRequest struct {
	Text *string `json:"text"`
}

type youtubeRequest struct {
	YouTubeURL *string `json:"youtube_url"`
}

// GeneratePodcast генерирует MP3-подкаст из текста запроса.
func (h *Handler) GeneratePodcast(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req podcastRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.Text == nil {
		h.writeMissingField(w, "text")
		return
	}

	mp3Data, err := h.pipeline.FromText(r.Context(), *req.Text)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	writeMP3(w, mp3Data, "podcast.mp3")
}

// ConvertYouTube прогоняет полный конвейер ingest→transcribe→synthesize→transcode.
func (h *Handler) ConvertYouTube(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req youtubeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.YouTubeURL == nil {
		h.writeMissingField(w, "youtube_url")
		return
	}

	mp3Data, err := h.pipeline.FromYouTube(r.Context(), *req.YouTubeURL)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	writeMP3(w, mp3Data, "youtube_podcast.mp3")
}

// Health сообщает живость сервиса и наличие ключа синтеза.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"service":            serviceName,
		"version":            serviceVersion,
		"api_key_configured": h.apiKeyConfigured(),
	})
}

// Root — статичный дескриптор сервиса.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": serviceName,
	})
}

// decodeBody разбирает JSON-тело запроса. Некорректный JSON (кодировка,
// типы полей) — структурный 422 с сырыми ошибками и подсказкой по экранированию.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusInternalServerError)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": "Invalid JSON format. Please ensure your JSON is properly formatted.",
			"errors": []string{err.Error()},
			"hint":   "Common issues: escape newlines as \\n, escape quotes, and ensure proper JSON syntax",
		})
		return false
	}
	return true
}

// writeMissingField отвечает 422, когда обязательное поле отсутствует в теле.
func (h *Handler) writeMissingField(w http.ResponseWriter, field string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": "Invalid request body.",
		"errors": []string{fmt.Sprintf("field %q is required", field)},
	})
}

// writePipelineError переводит Kind стадии в HTTP-статус; текст ошибки
// отдаётся как detail без изменения.
func (h *Handler) writePipelineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var se *podcast.StageError
	if errors.As(err, &se) && se.Kind == podcast.KindValidation {
		status = http.StatusBadRequest
	}
	if se != nil {
		h.logger.Errorw("pipeline failed", "kind", se.Kind.String(), "error", err)
	} else {
		h.logger.Errorw("pipeline failed", "error", err)
	}
	writeJSON(w, status, map[string]any{"detail": err.Error()})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed; use POST", http.StatusMethodNotAllowed)
		return false
	}
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		http.Error(w, "unsupported content type; use application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}

func writeMP3(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
