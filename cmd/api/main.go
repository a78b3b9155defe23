package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendly/internal/account"
	accountStore "github.com/MrJamesThe3rd/spendly/internal/account/store"
	"github.com/MrJamesThe3rd/spendly/internal/category"
	categoryStore "github.com/MrJamesThe3rd/spendly/internal/category/store"
	"github.com/MrJamesThe3rd/spendly/internal/config"
	"github.com/MrJamesThe3rd/spendly/internal/database"
	"github.com/MrJamesThe3rd/spendly/internal/export"
	spendlyHttp "github.com/MrJamesThe3rd/spendly/internal/http"
	accountHandler "github.com/MrJamesThe3rd/spendly/internal/http/account"
	"github.com/MrJamesThe3rd/spendly/internal/http/auth"
	categoryHandler "github.com/MrJamesThe3rd/spendly/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/spendly/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendly/internal/http/importcsv"
	txHandler "github.com/MrJamesThe3rd/spendly/internal/http/transaction"
	"github.com/MrJamesThe3rd/spendly/internal/importer"
	"github.com/MrJamesThe3rd/spendly/internal/ratelimit"
	"github.com/MrJamesThe3rd/spendly/internal/transaction"
	txStore "github.com/MrJamesThe3rd/spendly/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	cancel()

	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		transactionService = transaction.NewService(txStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db), cfg.Import.UncategorizedName)
		accountService     = account.NewService(accountStore.New(db))
		importService      = importer.NewService(transactionService, categoryService, accountService, importer.Options{
			Placeholder:    cfg.Import.PlaceholderPrefix,
			MaxUploadBytes: cfg.Import.MaxUploadBytes,
			Concurrency:    cfg.Import.SubmitConcurrency,
		})
		exportService = export.NewService(transactionService, categoryService, accountService)
	)

	handlers := spendlyHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService, categoryService),
		Import:       importHandler.NewHandler(importService),
		Categories:   categoryHandler.NewHandler(categoryService),
		Accounts:     accountHandler.NewHandler(accountService),
		Export:       exportHandler.NewHandler(exportService),
	}

	if cfg.Auth.Secret == "" {
		slog.Warn("AUTH_SECRET is empty, API authentication is disabled")
	}

	limiter := ratelimit.NewMemory(cfg.Auth.RateLimit, cfg.Auth.RateBurst, cfg.Auth.RateTTL)
	router := spendlyHttp.New(handlers, auth.Middleware([]byte(cfg.Auth.Secret), limiter), cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "name", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
