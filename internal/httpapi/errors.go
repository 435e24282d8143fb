package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mockinterview/internal/interview"
)

type errorBody struct {
	Detail string `json:"detail"`
	Cursor *int   `json:"current_question,omitempty"`
	Total  *int   `json:"total_questions,omitempty"`
}

// errorStatus maps engine error kinds to HTTP status codes and messages.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, interview.ErrNotFound):
		return http.StatusNotFound, "Interview session not found"
	case errors.Is(err, interview.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, interview.ErrAlreadyCompleted):
		return http.StatusBadRequest, "Interview already completed"
	case errors.Is(err, interview.ErrTimeLimitExceeded):
		return http.StatusBadRequest, "Interview time limit exceeded"
	case errors.Is(err, interview.ErrInvalidQuestionIndex):
		return http.StatusBadRequest, "Invalid question ID"
	case errors.Is(err, interview.ErrNoAnswersYet):
		return http.StatusBadRequest, "No answers submitted yet"
	case errors.Is(err, interview.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, interview.ErrContentProvider):
		return http.StatusBadGateway, "Failed to generate interview questions"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// abort writes the error response and records err for the request log.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg := errorStatus(err)
	body := errorBody{Detail: msg}

	// Progress context is for the owner only.
	var ge *interview.GuardError
	if errors.As(err, &ge) && !errors.Is(err, interview.ErrForbidden) {
		body.Cursor = &ge.Cursor
		body.Total = &ge.Total
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Detail: msg})
}
