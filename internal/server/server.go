// Package server exposes the engine as a JSON HTTP API. Handlers only bind
// requests, call the engine and translate its errors to status codes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/config"
	"github.com/opodrill/opodrill/internal/engine"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/review"
	"github.com/opodrill/opodrill/internal/statistics"
)

// Engine is the slice of the application facade the handlers consume.
//
//go:generate mockgen -source=server.go -destination=../mocks/server/mock_engine.go -package=mock_server Engine
type Engine interface {
	CreateAttempt(ctx context.Context, req engine.CreateAttemptRequest) (*attempt.Attempt, error)
	NextQuestion(ctx context.Context, attemptID string) (*engine.QuestionView, error)
	SubmitAnswer(ctx context.Context, req engine.SubmitAnswerRequest) (*engine.SubmitResult, error)
	GradeReview(ctx context.Context, questionID int64, g review.Grade) (review.State, error)
	GetDueStatistics(ctx context.Context, filter question.Filter) (statistics.DueBuckets, error)
	GetUserAccuracy(ctx context.Context, userID int64) ([]statistics.QuestionAccuracy, error)
	GetAttempt(ctx context.Context, attemptID string) (*attempt.Attempt, []attempt.AnswerRecord, error)
	SetFavorite(ctx context.Context, userID, questionID int64, favorite bool) error
}

// Server is the HTTP front of the engine.
type Server struct {
	echo   *echo.Echo
	engine Engine
	logger *slog.Logger
	port   int
}

// New wires the routes. All /api/v1 routes require a bearer token.
func New(eng Engine, cfg config.ServerConfig, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, engine: eng, logger: logger, port: cfg.Port}

	e.Use(s.requestLogger())
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1", requireAuth(cfg.JWTSecret))
	api.POST("/attempts", s.createAttempt)
	api.GET("/attempts/:id", s.getAttempt)
	api.GET("/attempts/:id/next", s.nextQuestion)
	api.POST("/attempts/:id/answers", s.submitAnswer)
	api.POST("/questions/:id/review", s.gradeReview)
	api.PUT("/questions/:id/favorite", s.setFavorite)
	api.GET("/statistics/due", s.dueStatistics)
	api.GET("/statistics/accuracy", s.accuracy)

	return s
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("echo.Start() > %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.NewString()
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)

			s.logger.Info("request",
				slog.String("request_id", requestID),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", c.Response().Status),
				slog.Duration("duration", time.Since(start)))
			return err
		}
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
