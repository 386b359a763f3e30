package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/gigdash/internal/app"
	"github.com/MrJamesThe3rd/gigdash/internal/config"
	gigdashHttp "github.com/MrJamesThe3rd/gigdash/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/gigdash/internal/http/budget"
	dashboardHandler "github.com/MrJamesThe3rd/gigdash/internal/http/dashboard"
	"github.com/MrJamesThe3rd/gigdash/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format, "api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := app.New(ctx, cfg, true)
	if err != nil {
		slog.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer services.Close()

	if services.Verifier == nil {
		slog.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	var (
		dashboardH = dashboardHandler.NewHandler(services.Dashboards, services.Importer, dashboardHandler.Defaults{
			ItemIDs:    cfg.Aggregator.ItemIDs,
			Lookback:   cfg.Aggregator.Lookback,
			IncomeGoal: services.IncomeGoal,
		})
		budgetH = budgetHandler.NewHandler(services.Budgets)
	)

	router := gigdashHttp.New(dashboardH, budgetH, gigdashHttp.Options{
		Verifier:    services.Verifier,
		CORSOrigins: cfg.CORS.Origins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           http.TimeoutHandler(router, cfg.Server.Timeout, "request timed out"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "store", cfg.Store.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
