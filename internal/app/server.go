package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/PlacesApp/internal/auth"
	"github.com/GoArmGo/PlacesApp/internal/config"
	"github.com/GoArmGo/PlacesApp/internal/core/ports"
	"github.com/GoArmGo/PlacesApp/internal/handler"
	"github.com/GoArmGo/PlacesApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer запускает HTTP сервер
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	userUseCase usecase.UserUseCase,
	placeUseCase usecase.PlaceUseCase,
	fileStorage ports.FileStorage,
	uploadLimiter chan struct{},
) error {
	tokens := auth.NewTokenService([]byte(cfg.JWTSecretKey), cfg.TokenTTL)

	userHandler := handler.NewUserHandler(userUseCase, fileStorage, uploadLimiter, logger)
	placeHandler := handler.NewPlaceHandler(placeUseCase, fileStorage, uploadLimiter, logger)

	r := chi.NewRouter()
	r.Use(handler.CORS)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Route("/api/places", func(r chi.Router) {
		r.Get("/user/{uid}", placeHandler.GetPlacesByUserID)
		r.Get("/{pid}", placeHandler.GetPlaceByID)

		// мутирующие операции — только с валидным токеном
		r.Group(func(r chi.Router) {
			r.Use(handler.Auth(tokens, logger))
			r.Post("/", placeHandler.CreatePlace)
			r.Patch("/{pid}", placeHandler.UpdatePlace)
			r.Delete("/{pid}", placeHandler.DeletePlace)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)
		r.Post("/signup", userHandler.Signup)
		r.Post("/login", userHandler.Login)
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful Shutdown
	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
