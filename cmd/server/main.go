package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/quizzical/internal/api"
	"github.com/vytor/quizzical/internal/config"
	"github.com/vytor/quizzical/internal/db"
	"github.com/vytor/quizzical/internal/logger"
	"github.com/vytor/quizzical/internal/questionbank"
	"github.com/vytor/quizzical/internal/repository"
	"github.com/vytor/quizzical/internal/repository/memory"
	"github.com/vytor/quizzical/internal/repository/sqlite"
	"github.com/vytor/quizzical/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Quizzical Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("storage_type=%s", cfg.StorageType)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("questions_path=%s", cfg.QuestionsPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timer_tick=%s", cfg.TimerTick)

	bank, err := questionbank.Load(cfg.QuestionsPath)
	if err != nil {
		log.Error("failed to load questions: %v", err)
		os.Exit(1)
	}
	summary := bank.Summary()
	log.Info("loaded %d questions (%d skipped)", summary.Total, summary.Skipped)

	ctx := context.Background()

	var store repository.KVStore
	switch cfg.StorageType {
	case config.StorageMemory:
		log.Warn("using in-memory storage, history will not survive a restart")
		store = memory.NewKVStore()
	default:
		database, err := db.Open(ctx, cfg.DBPath)
		if err != nil {
			log.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		store = sqlite.NewKVStore(database.DB)
	}

	history := repository.NewHistoryRepository(store)
	temporary := repository.NewTemporaryRepository(store)

	quizService := services.NewQuizService(bank, history, temporary, services.WithTimerTick(cfg.TimerTick))
	defer quizService.Close()

	srv := &api.Server{
		QuizService:    quizService,
		HistoryService: services.NewHistoryService(history),
		Bank:           bank,
		Storage:        store,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Quizzical Server Stopped")
	log.Info("===========================================")
}
