package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gamelog_daily/internal/middleware"
	"gamelog_daily/internal/model"
	"gamelog_daily/internal/service"
	"gamelog_daily/pkg/auth"
	"gamelog_daily/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type challengeRoutes struct {
	cs service.DailyChallengeServiceI
}

func NewChallengeRoutes(handler *gin.RouterGroup, cs service.DailyChallengeServiceI, a *auth.TelegramAuth, authz *middleware.Authorization) {
	r := &challengeRoutes{cs: cs}
	h := handler.Group("/challenges")
	{
		h.GET("/today", a.OptionalTelegramAuthMiddleware(), authz.OptionalUser(), r.GetToday)
		h.GET("/leaderboard/:mode", r.GetLeaderboard)
	}

	play := h.Group("", a.TelegramAuthMiddleware(), authz.RequireUser())
	{
		play.POST("/word/guess", r.SubmitWordGuess)
		play.POST("/memory/result", r.SubmitMemoryResult)
		play.POST("/reaction/result", r.SubmitReactionResult)
	}
}

type WordGuessRequest struct {
	Guess string `json:"guess" binding:"required"`
}

type MemoryResultRequest struct {
	Moves      int   `json:"moves"`
	Mistakes   int   `json:"mistakes"`
	DurationMs int64 `json:"durationMs"`
}

type ReactionResultRequest struct {
	DurationMs int64 `json:"durationMs"`
}

type AttemptResponse struct {
	AttemptNumber int                 `json:"attemptNumber"`
	Won           bool                `json:"won"`
	Score         int                 `json:"score"`
	DurationMs    *int64              `json:"durationMs,omitempty"`
	Guess         string              `json:"guess,omitempty"`
	Feedback      []model.LetterState `json:"feedback,omitempty"`
	Moves         *int                `json:"moves,omitempty"`
	Mistakes      *int                `json:"mistakes,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type SubmissionResponse struct {
	Mode              model.Mode          `json:"mode"`
	Attempt           AttemptResponse     `json:"attempt"`
	Feedback          []model.LetterState `json:"feedback,omitempty"`
	AttemptsUsed      int                 `json:"attemptsUsed"`
	AttemptsRemaining int                 `json:"attemptsRemaining"`
	Resolved          bool                `json:"resolved"`
	Solution          *string             `json:"solution,omitempty"`
	Streak            int                 `json:"streak"`
}

type PublicWordResponse struct {
	Length int    `json:"length"`
	Hint   string `json:"hint"`
	Theme  string `json:"theme"`
}

type ChallengeSummaryResponse struct {
	ChallengeID       string                 `json:"challengeId"`
	Mode              model.Mode             `json:"mode"`
	MaxAttempts       int                    `json:"maxAttempts"`
	Word              *PublicWordResponse    `json:"word,omitempty"`
	Memory            *model.MemoryContent   `json:"memory,omitempty"`
	Reaction          *model.ReactionContent `json:"reaction,omitempty"`
	Attempts          []AttemptResponse      `json:"attempts"`
	AttemptsUsed      int                    `json:"attemptsUsed"`
	AttemptsRemaining int                    `json:"attemptsRemaining"`
	Completed         bool                   `json:"completed"`
	Resolved          bool                   `json:"resolved"`
	Solution          *string                `json:"solution,omitempty"`
	BestScore         *int                   `json:"bestScore,omitempty"`
	Streak            int                    `json:"streak"`
}

type DailySummaryResponse struct {
	Date       string                     `json:"date"`
	Challenges []ChallengeSummaryResponse `json:"challenges"`
}

type LeaderboardResponse struct {
	Mode       model.Mode                `json:"mode"`
	WindowDays int                       `json:"windowDays"`
	Entries    []*model.LeaderboardEntry `json:"entries"`
}

func (r *challengeRoutes) GetToday(c *gin.Context) {
	var userID *int64
	if user, ok := middleware.CurrentUser(c); ok {
		userID = &user.ID
	}

	summary, err := r.cs.GetTodaySummary(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "failed to get today's challenges")
		return
	}

	response := DailySummaryResponse{
		Date:       summary.Date.Format(time.DateOnly),
		Challenges: make([]ChallengeSummaryResponse, len(summary.Challenges)),
	}
	for i, cs := range summary.Challenges {
		response.Challenges[i] = toChallengeSummaryResponse(cs)
	}

	c.JSON(http.StatusOK, response)
}

func (r *challengeRoutes) SubmitWordGuess(c *gin.Context) {
	var req WordGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger().Info("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	result, err := r.cs.SubmitWordGuess(c.Request.Context(), user.ID, req.Guess)
	if err != nil {
		writeError(c, err, "failed to submit guess")
		return
	}

	c.JSON(http.StatusOK, toSubmissionResponse(result))
}

func (r *challengeRoutes) SubmitMemoryResult(c *gin.Context) {
	var req MemoryResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger().Info("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	result, err := r.cs.SubmitMemoryResult(c.Request.Context(), user.ID, req.Moves, req.Mistakes, req.DurationMs)
	if err != nil {
		writeError(c, err, "failed to submit memory result")
		return
	}

	c.JSON(http.StatusOK, toSubmissionResponse(result))
}

func (r *challengeRoutes) SubmitReactionResult(c *gin.Context) {
	var req ReactionResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger().Info("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	result, err := r.cs.SubmitReactionResult(c.Request.Context(), user.ID, req.DurationMs)
	if err != nil {
		writeError(c, err, "failed to submit reaction result")
		return
	}

	c.JSON(http.StatusOK, toSubmissionResponse(result))
}

func (r *challengeRoutes) GetLeaderboard(c *gin.Context) {
	mode := model.Mode(c.Param("mode"))

	window, err := strconv.Atoi(c.DefaultQuery("window", strconv.Itoa(service.DefaultLeaderboardWindow)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window"})
		return
	}

	entries, err := r.cs.GetLeaderboard(c.Request.Context(), mode, window)
	if err != nil {
		writeError(c, err, "failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, LeaderboardResponse{
		Mode:       mode,
		WindowDays: window,
		Entries:    entries,
	})
}

func writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAttemptsExhausted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Logger().Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

func toAttemptResponse(a *model.Attempt) AttemptResponse {
	resp := AttemptResponse{
		AttemptNumber: a.AttemptNumber,
		Won:           a.Won,
		Score:         a.Score,
		DurationMs:    a.DurationMs,
		CreatedAt:     a.CreatedAt,
	}
	if w := a.Payload.Word; w != nil {
		resp.Guess = w.Guess
		resp.Feedback = w.Feedback
	}
	if m := a.Payload.Memory; m != nil {
		resp.Moves = &m.Moves
		resp.Mistakes = &m.Mistakes
	}
	return resp
}

func toSubmissionResponse(r *model.SubmissionResult) SubmissionResponse {
	return SubmissionResponse{
		Mode:              r.Mode,
		Attempt:           toAttemptResponse(r.Attempt),
		Feedback:          r.Feedback,
		AttemptsUsed:      r.AttemptsUsed,
		AttemptsRemaining: r.AttemptsRemaining,
		Resolved:          r.Resolved,
		Solution:          r.Solution,
		Streak:            r.Streak,
	}
}

func toChallengeSummaryResponse(cs *model.ChallengeSummary) ChallengeSummaryResponse {
	resp := ChallengeSummaryResponse{
		ChallengeID:       cs.ChallengeID,
		Mode:              cs.Mode,
		MaxAttempts:       cs.MaxAttempts,
		Memory:            cs.Memory,
		Reaction:          cs.Reaction,
		Attempts:          make([]AttemptResponse, len(cs.Attempts)),
		AttemptsUsed:      cs.AttemptsUsed,
		AttemptsRemaining: cs.AttemptsRemaining,
		Completed:         cs.Completed,
		Resolved:          cs.Resolved,
		Solution:          cs.Solution,
		BestScore:         cs.BestScore,
		Streak:            cs.Streak,
	}
	if cs.Word != nil {
		resp.Word = &PublicWordResponse{
			Length: cs.Word.Length,
			Hint:   cs.Word.Hint,
			Theme:  cs.Word.Theme,
		}
	}
	for i, a := range cs.Attempts {
		resp.Attempts[i] = toAttemptResponse(a)
	}
	return resp
}
