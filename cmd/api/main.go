package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/kaloraat/auth-api/internal/config"
	"github.com/kaloraat/auth-api/internal/handler"
	"github.com/kaloraat/auth-api/internal/mailer"
	"github.com/kaloraat/auth-api/internal/middleware"
	"github.com/kaloraat/auth-api/internal/repository"
	"github.com/kaloraat/auth-api/internal/service"
	"github.com/kaloraat/auth-api/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	// The account store is the system of record; without it there is nothing
	// to serve.
	client, err := repository.NewDB(cfg.MongoURI)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	userRepo, err := repository.NewMongoUserRepository(client.Database(cfg.MongoDB))
	if err != nil {
		slog.Error("user repository init failed", "error", err)
		os.Exit(1)
	}

	mail, err := mailer.New(cfg.Mail)
	if err != nil {
		slog.Error("mailer init failed", "error", err)
		os.Exit(1)
	}

	images, err := storage.NewS3ImageStore(context.Background(), cfg.S3)
	if err != nil {
		slog.Error("image store init failed", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(userRepo, mail, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, images)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":"hello world from the auth API"}`))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/signup", authHandler.HandleSignup)
		r.Post("/api/signin", authHandler.HandleSignin)
		r.Post("/api/forgot-password", authHandler.HandleForgotPassword)
		r.Post("/api/reset-password", authHandler.HandleResetPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/me", userHandler.HandleMe)
		r.Post("/api/update-password", authHandler.HandleUpdatePassword)
		r.Post("/api/upload-image", userHandler.HandleUploadImage)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
