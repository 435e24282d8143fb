package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

// Per-request provider selection headers.
const (
	headerProvider = "X-LLM-Provider"
	headerModel    = "X-LLM-Model"
	headerAPIKey   = "X-LLM-Api-Key"
)

type startRequest struct {
	QuestionTypes      []string `json:"question_types" binding:"required"`
	Difficulty         string   `json:"difficulty"`
	NumQuestions       int      `json:"num_questions"`
	MaxDurationMinutes int      `json:"max_duration_minutes"`
}

type startResponse struct {
	InterviewID        string                   `json:"interview_id"`
	Questions          []interview.QuestionView `json:"questions"`
	MaxDurationSeconds int                      `json:"max_duration_seconds"`
	StartTime          time.Time                `json:"start_time"`
}

type answerRequest struct {
	QuestionID    *int     `json:"question_id" binding:"required"`
	Transcript    string   `json:"transcript"`
	AudioDuration *float64 `json:"audio_duration"`
}

type answerResponse struct {
	QuestionID       int             `json:"question_id"`
	Scores           interview.Score `json:"scores"`
	NextQuestionID   *int            `json:"next_question_id"`
	FollowUpQuestion *string         `json:"follow_up_question"`
	Degraded         bool            `json:"degraded"`
	Completed        bool            `json:"completed"`
}

type activeResponse struct {
	Interviews []interview.Listing `json:"interviews"`
	Count      int                 `json:"count"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// engineFor returns the engine bound to the caller's provider selection,
// or the default engine when no X-LLM-* header is present.
func (s *Server) engineFor(c *gin.Context, owner string) (*interview.Engine, error) {
	o := llm.Override{
		Provider: c.GetHeader(headerProvider),
		Model:    c.GetHeader(headerModel),
		APIKey:   c.GetHeader(headerAPIKey),
	}
	if o.IsZero() || s.resolver == nil {
		return s.engine, nil
	}
	cp, err := s.resolver.Content(c.Request.Context(), owner, o)
	if err != nil {
		return nil, err
	}
	return s.engine.WithContent(cp), nil
}

func (s *Server) startInterview(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cats := make([]interview.Category, 0, len(req.QuestionTypes))
	for _, qt := range req.QuestionTypes {
		cat, err := interview.ParseCategory(qt)
		if err != nil {
			abort(c, err)
			return
		}
		cats = append(cats, cat)
	}
	var diff interview.Difficulty
	if strings.TrimSpace(req.Difficulty) != "" {
		d, err := interview.ParseDifficulty(req.Difficulty)
		if err != nil {
			abort(c, err)
			return
		}
		diff = d
	}

	owner := identity(c).UserID
	engine, err := s.engineFor(c, owner)
	if err != nil {
		s.log.Warn("provider selection failed", zap.String("user_id", owner), zap.Error(err))
		badRequest(c, "Invalid LLM provider settings")
		return
	}

	res, err := engine.StartSession(c.Request.Context(), owner, interview.StartRequest{
		Categories:    cats,
		Difficulty:    diff,
		QuestionCount: req.NumQuestions,
		TimeLimit:     time.Duration(req.MaxDurationMinutes) * time.Minute,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, startResponse{
		InterviewID:        res.SessionID,
		Questions:          res.Questions,
		MaxDurationSeconds: int(res.TimeLimit / time.Second),
		StartTime:          res.CreatedAt,
	})
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	owner := identity(c).UserID
	engine, err := s.engineFor(c, owner)
	if err != nil {
		s.log.Warn("provider selection failed", zap.String("user_id", owner), zap.Error(err))
		badRequest(c, "Invalid LLM provider settings")
		return
	}

	res, err := engine.SubmitAnswer(c.Request.Context(), interview.SubmitRequest{
		SessionID:     c.Param("id"),
		OwnerID:       owner,
		QuestionIndex: *req.QuestionID,
		Transcript:    req.Transcript,
		AudioDuration: req.AudioDuration,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, answerResponse{
		QuestionID:       res.QuestionIndex,
		Scores:           res.Score,
		NextQuestionID:   res.NextQuestionIndex,
		FollowUpQuestion: res.Followup,
		Degraded:         res.Degraded,
		Completed:        res.Completed,
	})
}

func (s *Server) getSummary(c *gin.Context) {
	sum, err := s.engine.GetSummary(c.Request.Context(), c.Param("id"), identity(c).UserID)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) listActive(c *gin.Context) {
	list := s.engine.ListActive(c.Request.Context(), identity(c).UserID)
	if list == nil {
		list = []interview.Listing{}
	}
	c.JSON(http.StatusOK, activeResponse{Interviews: list, Count: len(list)})
}

func (s *Server) deleteInterview(c *gin.Context) {
	if err := s.engine.DeleteSession(c.Request.Context(), c.Param("id"), identity(c).UserID); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse{Success: true, Message: "Interview session deleted successfully"})
}

// evictProviders drops the caller's cached LLM clients, e.g. after a key
// rotation.
func (s *Server) evictProviders(c *gin.Context) {
	n := 0
	if s.resolver != nil {
		n = s.resolver.Evict(identity(c).UserID)
	}
	c.JSON(http.StatusOK, gin.H{"evicted": n})
}
