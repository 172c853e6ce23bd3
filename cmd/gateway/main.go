package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fpvsettling/ai-gateway/internal/ai"
	apihttp "fpvsettling/ai-gateway/internal/api/http"
	"fpvsettling/ai-gateway/internal/config"
	"fpvsettling/ai-gateway/internal/lib/logger/sl"
	"fpvsettling/ai-gateway/internal/lib/logger/slogpretty"
	"fpvsettling/ai-gateway/internal/logsink"
	"fpvsettling/ai-gateway/internal/repository"
	"fpvsettling/ai-gateway/internal/repository/kafka"
	"fpvsettling/ai-gateway/internal/service"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"

	shutdownTimeout = 10 * time.Second
)

func main() {

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level := new(slog.LevelVar)
	level.Set(parseLevel(cfg.Log.Level))
	log := setupLogger(cfg.Env, level)

	log.Info("starting gateway",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"default_model", cfg.AI.DefaultModel,
	)

	if cfg.Watch(func(e fsnotify.Event, fresh *config.Config) {
		level.Set(parseLevel(fresh.Log.Level))
		log.Info("config reloaded", "file", e.Name, "log_level", fresh.Log.Level)
	}) {
		log.Debug("watching config file", "file", cfg.ConfigFile())
	}

	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	sink := logsink.New(logsink.NewFileWriter(cfg.Log.File))

	var logRepo repository.LogRepository = repository.NopLogRepository{}
	if cfg.KafkaEnabled() {
		log.Info("log fan-out enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		logRepo = repository.NewKafkaLogRepository(kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic))
	}
	defer logRepo.Close()

	generator := ai.NewGenAIGenerator(ai.GenAIOptions{
		BaseURL:         cfg.AI.BaseURL,
		IncludeThoughts: cfg.AI.IncludeThoughts,
		Timeout:         cfg.GetAITimeout(),
	})
	credentials := ai.NewCredentialResolver(cfg.AI.APIKey)
	if credentials.HasDefault() {
		log.Info("default api key loaded")
	} else {
		log.Warn("no default api key, decision requests must carry apiKey")
	}
	aiClient := ai.NewClient(generator, credentials, cfg.AI.DefaultModel, log)

	logService := service.NewLogService(sink, logRepo, log)
	decisionService := service.NewDecisionService(aiClient, sink, cfg.AI.DefaultModel)

	router := apihttp.NewRouter(
		apihttp.NewLogController(logService, sink, log),
		apihttp.NewDecisionController(decisionService, log),
		log,
	)

	httpServer := &nethttp.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printBanner(cfg, sink.File().AbsPath())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down gateway...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("gateway stopped with error", sl.Err(err))
		os.Exit(1)
	}

	color.Yellow("Server stopped")
	log.Info("gateway stopped gracefully")
}

func setupLogger(env string, level *slog.LevelVar) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog(level)
	case envDev, envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
		)
	default:
		log = setupPrettySlog(level)
	}

	return log
}

func setupPrettySlog(level *slog.LevelVar) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func printBanner(cfg *config.Config, logPath string) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	rule := strings.Repeat("=", 50)

	bold.Println(rule)
	bold.Println("FPV Settling - Log Server & AI Gateway")
	bold.Println(rule)
	fmt.Printf("Listening on: %s\n", green.Sprintf("http://%s", cfg.Addr()))
	fmt.Printf("Log file: %s\n", green.Sprint(logPath))
}
