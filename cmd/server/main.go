package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	newlifejournal "github.com/newlifejournal/newlifejournal"
	"github.com/newlifejournal/newlifejournal/internal/ai"
	"github.com/newlifejournal/newlifejournal/internal/auth"
	"github.com/newlifejournal/newlifejournal/internal/config"
	"github.com/newlifejournal/newlifejournal/internal/handler"
	"github.com/newlifejournal/newlifejournal/internal/repository"
	"github.com/newlifejournal/newlifejournal/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	migrationsFS, err := fs.Sub(newlifejournal.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(pool)

	if err := store.SeedWeekInfo(ctx); err != nil {
		slog.Error("failed to seed week data", "error", err)
		os.Exit(1)
	}

	// A misconfigured AI provider disables chat instead of blocking the
	// rest of the app.
	aiCfg := providerConfig(cfg)
	aiService, err := ai.NewService(aiCfg)
	if err != nil {
		var ce *ai.ConfigurationError
		if errors.As(err, &ce) {
			slog.Warn("chat assistant disabled", "reason", ce.Error())
			aiService = nil
		} else {
			slog.Error("failed to create ai service", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("ai provider ready", "provider", aiCfg.Provider, "model", aiCfg.ResolvedModel())
	}

	hub := service.NewHub()
	userService := service.NewUserService(store)
	pregnancyService := service.NewPregnancyService(store)
	weekService := service.NewWeekService(store)
	chatService := service.NewChatService(aiService, aiCfg.ResolvedModel(), store, pregnancyService, hub)

	h := handler.New(handler.Deps{
		Users:         userService,
		Pregnancies:   pregnancyService,
		Chat:          chatService,
		Weeks:         weekService,
		Hub:           hub,
		Google:        auth.NewGoogleVerifier(cfg.GoogleClientID),
		JWTSigningKey: cfg.JWTSigningKey,
		JWTTTL:        cfg.JWTTTL,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped gracefully")
}

func providerConfig(cfg *config.Config) ai.Config {
	out := ai.Config{
		Provider: ai.Provider(cfg.AIProvider),
		Timeout:  config.RequestTimeout,
	}
	switch out.Provider {
	case ai.ProviderAnthropic:
		out.APIKey = cfg.AnthropicAPIKey
		out.Model = cfg.AnthropicModel
	case ai.ProviderOpenAI:
		out.APIKey = cfg.OpenAIAPIKey
		out.Model = cfg.OpenAIModel
	case ai.ProviderGemini:
		out.APIKey = cfg.GeminiAPIKey
		out.Model = cfg.GeminiModel
	case ai.ProviderCustom:
		out.BaseURL = cfg.CustomAIURL
		out.APIKey = cfg.CustomAIKey
	}
	return out
}
