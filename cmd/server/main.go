package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maturski-kviz/backend/internal/api"
	"github.com/maturski-kviz/backend/internal/domain/questionbank"
	"github.com/maturski-kviz/backend/internal/domain/quizsession"
	"github.com/maturski-kviz/backend/internal/infrastructure/config"
	"github.com/maturski-kviz/backend/internal/service"
	"github.com/maturski-kviz/backend/internal/store"
)

// @title           Maturski Kviz API
// @version         1.0
// @description     Matura exam practice quiz — browse the question bank, take timed multiple-choice quizzes, and track your progress.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	bank, err := questionbank.Load(cfg.QuestionBankPath)
	if err != nil {
		logger.Error("failed to load question bank", "path", cfg.QuestionBankPath, "error", err)
		os.Exit(1)
	}
	hard, extreme := bank.TierCounts()
	logger.Info("question bank loaded",
		"sections", len(bank.Sections),
		"questions", bank.TotalQuestions(),
		"hard", hard,
		"extreme", extreme,
	)

	db, err := store.New(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "path", cfg.StorePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	progress := service.NewProgressService(db, logger)
	quiz := quizsession.NewController(cfg.RevealDelay, progress.OnWrongAnswer, progress.OnQuizCompleted)
	handler := api.NewHandler(bank, quiz, progress, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		quiz.Exit()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
