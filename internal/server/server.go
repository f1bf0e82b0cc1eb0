package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Server — HTTP-фронтенд конвейера генерации подкастов.
type Server struct {
	srv     *http.Server
	logger  *zap.SugaredLogger
	running atomic.Bool
}

func New(addr string, h *Handler, logger *zap.SugaredLogger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate-podcast", h.GeneratePodcast)
	mux.HandleFunc("/convert-youtube", h.ConvertYouTube)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/", h.Root)

	s := &Server{logger: logger}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           corsMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	go func() {
		s.logger.Infow("podcast API listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
			s.logger.Errorw("server stopped with error", "error", err)
		} else {
			s.logger.Infow("server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Stop(context.WithoutCancel(ctx))
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("server shutdown timeout"))
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	return nil
}

func (s *Server) Addr() string { return s.srv.Addr }

// corsMiddleware разрешает кросс-доменные запросы (как у исходного API —
// полностью открытый CORS).
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
