package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/opodrill/opodrill/internal/engine"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/review"
)

// POST /api/v1/attempts
func (s *Server) createAttempt(c echo.Context) error {
	var req engine.CreateAttemptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}
	req.UserID = authenticatedUserID(c)

	att, err := s.engine.CreateAttempt(c.Request().Context(), req)
	if err != nil {
		return s.engineError(c, err)
	}
	return c.JSON(http.StatusCreated, att)
}

// GET /api/v1/attempts/:id
func (s *Server) getAttempt(c echo.Context) error {
	att, answers, err := s.engine.GetAttempt(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.engineError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"attempt": att,
		"answers": answers,
	})
}

// GET /api/v1/attempts/:id/next
func (s *Server) nextQuestion(c echo.Context) error {
	view, err := s.engine.NextQuestion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.engineError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// POST /api/v1/attempts/:id/answers
func (s *Server) submitAnswer(c echo.Context) error {
	var req engine.SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}
	req.AttemptID = c.Param("id")

	result, err := s.engine.SubmitAnswer(c.Request().Context(), req)
	if err != nil {
		return s.engineError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

type gradeReviewRequest struct {
	Grade string `json:"grade"`
}

// POST /api/v1/questions/:id/review
func (s *Server) gradeReview(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid question id"))
	}
	var req gradeReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}
	grade, err := review.ParseGrade(req.Grade)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("grade must be one of again, hard, good, easy"))
	}

	state, err := s.engine.GradeReview(c.Request().Context(), questionID, grade)
	if err != nil {
		return s.engineError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

type setFavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// PUT /api/v1/questions/:id/favorite
func (s *Server) setFavorite(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid question id"))
	}
	var req setFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}

	if err := s.engine.SetFavorite(c.Request().Context(), authenticatedUserID(c), questionID, req.Favorite); err != nil {
		return s.engineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/v1/statistics/due
func (s *Server) dueStatistics(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	buckets, err := s.engine.GetDueStatistics(c.Request().Context(), filter)
	if err != nil {
		return s.engineError(c, err)
	}
	return c.JSON(http.StatusOK, buckets)
}

// GET /api/v1/statistics/accuracy
func (s *Server) accuracy(c echo.Context) error {
	rows, err := s.engine.GetUserAccuracy(c.Request().Context(), authenticatedUserID(c))
	if err != nil {
		return s.engineError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func filterFromQuery(c echo.Context) (question.Filter, error) {
	var filter question.Filter
	if v := c.QueryParam("opposition_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid opposition_id")
		}
		filter.OppositionID = id
	}
	if v := c.QueryParam("difficulty"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return filter, errors.New("invalid difficulty")
		}
		filter.Difficulty = d
	}
	for _, v := range c.QueryParams()["topic_id"] {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid topic_id")
		}
		filter.TopicIDs = append(filter.TopicIDs, id)
	}
	return filter, nil
}

// engineError translates the engine's failure taxonomy to HTTP statuses:
// invalid input is 400, missing resources 404, rejected transitions 409.
func (s *Server) engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidScope), errors.Is(err, engine.ErrInvalidGrade):
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, engine.ErrAttemptNotFound), errors.Is(err, engine.ErrQuestionNotFound),
		errors.Is(err, engine.ErrNoCandidates):
		return c.JSON(http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, engine.ErrAttemptFinished), errors.Is(err, engine.ErrQuestionNotInPool),
		errors.Is(err, engine.ErrPoolExhausted):
		return c.JSON(http.StatusConflict, errorBody(err.Error()))
	default:
		s.logger.Error("request failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}
}
