package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jantavoice/backend/internal/ai"
	"github.com/jantavoice/backend/internal/config"
	"github.com/jantavoice/backend/internal/db"
	"github.com/jantavoice/backend/internal/geocode"
	httpapi "github.com/jantavoice/backend/internal/http"
)

const assistantSystemPrompt = "You are EcoSarthi, a helpful assistant for Indian government welfare schemes. " +
	"Answer in simple language, list eligibility, benefits and application steps, and point to the official website."

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "jantavoice-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "audios"), 0o755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create upload dirs")
	}

	var transcriber ai.Transcriber
	var extractor ai.FieldExtractor
	if cfg.GroqAPIKey == "" {
		transcriber = ai.MockTranscriber{}
		logger.Info().Msg("using mock transcriber")
	} else {
		transcriber = ai.GroqWhisper{APIKey: cfg.GroqAPIKey, Model: cfg.WhisperModel}
	}
	if cfg.OpenRouterAPIKey == "" {
		extractor = ai.MockExtractor{}
		logger.Info().Msg("using mock extractor")
	} else {
		extractor = ai.OpenRouterExtractor{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.ExtractorModel,
		}
	}

	var assistant ai.Assistant
	if cfg.OpenRouterAPIKey == "" {
		assistant = ai.MockAssistant{}
		logger.Info().Msg("using mock assistant")
	} else {
		assistant = &ai.OpenAICompatAssistant{
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.AssistantModel,
			APIKey:  cfg.OpenRouterAPIKey,
			System:  assistantSystemPrompt,
		}
	}

	geocoder := &geocode.NominatimGeocoder{
		BaseURL:   cfg.GeocodeBaseURL,
		UserAgent: cfg.GeocodeUserAgent,
	}

	// Expired sessions accumulate without a reaper; clean hourly.
	reaperCtx, stopReaper := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-reaperCtx.Done():
				return
			case <-ticker.C:
				if n, err := store.DeleteExpiredSessions(reaperCtx); err != nil {
					logger.Warn().Err(err).Msg("session cleanup failed")
				} else if n > 0 {
					logger.Info().Int64("deleted", n).Msg("expired sessions removed")
				}
			}
		}
	}()

	router := httpapi.Router(cfg, store, transcriber, extractor, assistant, geocoder, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopReaper()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
