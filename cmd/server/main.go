package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/auth"
	"fittrack/internal/config"
	"fittrack/internal/crypto"
	"fittrack/internal/db"
	"fittrack/internal/handlers"
	"fittrack/internal/logging"
	mw "fittrack/internal/middleware"
	"fittrack/internal/services"
	"fittrack/internal/store/memory"
	"fittrack/internal/store/postgres"
)

type stores struct {
	users     services.UserStore
	workouts  services.WorkoutStore
	meals     services.MealStore
	timerLogs services.TimerLogStore
	feedback  services.FeedbackStore
	health    handlers.Pinger
	close     func() error
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set; using in-memory stores, data is lost on restart")
		mem := memory.New()
		return &stores{
			users:     memory.NewUserStore(mem),
			workouts:  memory.NewWorkoutStore(mem),
			meals:     memory.NewMealStore(mem),
			timerLogs: memory.NewTimerLogStore(mem),
			feedback:  memory.NewFeedbackStore(mem),
			close:     func() error { return nil },
		}, nil
	}

	conn, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBConnMaxLifetime)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &stores{
		users:     postgres.NewUserStore(conn),
		workouts:  postgres.NewWorkoutStore(conn),
		meals:     postgres.NewMealStore(conn),
		timerLogs: postgres.NewTimerLogStore(conn),
		feedback:  postgres.NewFeedbackStore(conn),
		health:    conn,
		close:     conn.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := openStores(startCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer st.close()

	resetTokens, err := crypto.NewResetTokens(cfg.ResetTokenKey)
	if err != nil {
		logger.Fatal("reset token key", zap.Error(err))
	}
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	notifier := services.NewLogNotifier(logger)

	authSvc := services.NewAuthService(st.users, issuer, resetTokens, notifier,
		services.AuthConfig{ClientURL: cfg.ClientURL, ResetTTL: cfg.ResetTokenTTL}, logger)

	api := &handlers.API{
		Auth:           handlers.NewAuthHandler(authSvc, logger),
		Workouts:       handlers.NewWorkoutHandler(services.NewWorkoutService(st.workouts), logger),
		Nutrition:      handlers.NewNutritionHandler(services.NewNutritionService(st.meals), logger),
		TimerLogs:      handlers.NewTimerLogHandler(services.NewTimerLogService(st.timerLogs), logger),
		Feedback:       handlers.NewFeedbackHandler(services.NewFeedbackService(st.feedback, notifier, cfg.FeedbackInbox, logger), logger),
		Dashboard:      handlers.NewDashboardHandler(services.NewDashboardService(st.workouts, st.meals), logger),
		Health:         handlers.NewHealthHandler(st.health, logger),
		AuthMW:         mw.NewAuthMiddleware(issuer),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
