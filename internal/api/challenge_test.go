package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"gamelog_daily/internal/middleware"
	"gamelog_daily/internal/model"
	"gamelog_daily/internal/service"
	"gamelog_daily/internal/service/mocks"
	"gamelog_daily/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const playerID int64 = 42

func authHeader() string {
	v := url.Values{}
	v.Set("auth_date", "1741600000")
	v.Set("user", `{"id":42,"username":"ada"}`)
	return "Telegram " + v.Encode()
}

func newRouter(cs *mocks.MockDailyChallengeService, us *mocks.MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1")
	a := auth.NewTelegramAuth("", true)
	authz := middleware.NewAuthorization(us)
	NewChallengeRoutes(v1, cs, a, authz)
	NewUserRoutes(v1, a, authz)
	return r
}

func knownPlayer() *mocks.MockUserService {
	us := &mocks.MockUserService{}
	us.On("GetUserByID", mock.Anything, playerID).Return(&model.User{ID: playerID, DisplayName: "Ada"}, nil)
	return us
}

func do(r *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", authHeader())
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitWordGuess(t *testing.T) {
	solution := "LLAMA"
	result := &model.SubmissionResult{
		Mode: model.ModeWord,
		Attempt: &model.Attempt{
			AttemptNumber: 2,
			Won:           true,
			Score:         60,
			Payload: model.AttemptPayload{Word: &model.WordPayload{
				Guess:    "LLAMA",
				Feedback: []model.LetterState{"correct", "correct", "correct", "correct", "correct"},
			}},
		},
		Feedback:          []model.LetterState{"correct", "correct", "correct", "correct", "correct"},
		AttemptsUsed:      2,
		AttemptsRemaining: 3,
		Resolved:          true,
		Solution:          &solution,
		Streak:            4,
	}

	tests := []struct {
		name       string
		body       string
		authed     bool
		mockSetup  func(cs *mocks.MockDailyChallengeService)
		wantStatus int
	}{
		{
			name:       "Unauthenticated",
			body:       `{"guess":"llama"}`,
			mockSetup:  func(cs *mocks.MockDailyChallengeService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Missing guess",
			body:       `{}`,
			authed:     true,
			mockSetup:  func(cs *mocks.MockDailyChallengeService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Accepted",
			body:   `{"guess":"llama"}`,
			authed: true,
			mockSetup: func(cs *mocks.MockDailyChallengeService) {
				cs.On("SubmitWordGuess", mock.Anything, playerID, "llama").Return(result, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "Invalid guess",
			body:   `{"guess":"ll"}`,
			authed: true,
			mockSetup: func(cs *mocks.MockDailyChallengeService) {
				cs.On("SubmitWordGuess", mock.Anything, playerID, "ll").Return(nil, service.ErrInvalidInput)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Out of attempts",
			body:   `{"guess":"llama"}`,
			authed: true,
			mockSetup: func(cs *mocks.MockDailyChallengeService) {
				cs.On("SubmitWordGuess", mock.Anything, playerID, "llama").Return(nil, service.ErrAttemptsExhausted)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "Already solved",
			body:   `{"guess":"llama"}`,
			authed: true,
			mockSetup: func(cs *mocks.MockDailyChallengeService) {
				cs.On("SubmitWordGuess", mock.Anything, playerID, "llama").Return(nil, service.ErrAlreadyCompleted)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &mocks.MockDailyChallengeService{}
			tt.mockSetup(cs)
			r := newRouter(cs, knownPlayer())

			w := do(r, http.MethodPost, "/api/v1/challenges/word/guess", tt.body, tt.authed)
			assert.Equal(t, tt.wantStatus, w.Code)
			cs.AssertExpectations(t)

			if tt.wantStatus == http.StatusOK {
				var resp SubmissionResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "LLAMA", resp.Attempt.Guess)
				assert.Equal(t, 60, resp.Attempt.Score)
				assert.Equal(t, 3, resp.AttemptsRemaining)
				require.NotNil(t, resp.Solution)
				assert.Equal(t, "LLAMA", *resp.Solution)
				assert.Equal(t, 4, resp.Streak)
			}
		})
	}
}

func TestSubmitMemoryAndReaction(t *testing.T) {
	duration := int64(6000)
	cs := &mocks.MockDailyChallengeService{}
	cs.On("SubmitMemoryResult", mock.Anything, playerID, 12, 2, int64(6000)).Return(&model.SubmissionResult{
		Mode: model.ModeMemory,
		Attempt: &model.Attempt{
			AttemptNumber: 1, Won: true, Score: 1230, DurationMs: &duration,
			Payload: model.AttemptPayload{Memory: &model.MemoryPayload{Moves: 12, Mistakes: 2}},
		},
		AttemptsUsed: 1,
		Resolved:     true,
	}, nil)
	cs.On("SubmitReactionResult", mock.Anything, playerID, int64(0)).Return(nil, service.ErrInvalidInput)

	r := newRouter(cs, knownPlayer())

	w := do(r, http.MethodPost, "/api/v1/challenges/memory/result", `{"moves":12,"mistakes":2,"durationMs":6000}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1230, resp.Attempt.Score)
	require.NotNil(t, resp.Attempt.Moves)
	assert.Equal(t, 12, *resp.Attempt.Moves)
	assert.Nil(t, resp.Solution)

	w = do(r, http.MethodPost, "/api/v1/challenges/reaction/result", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	cs.AssertExpectations(t)
}

func TestGetToday(t *testing.T) {
	summary := &model.DailySummary{
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Challenges: []*model.ChallengeSummary{
			{
				ChallengeID:       "c1",
				Mode:              model.ModeWord,
				MaxAttempts:       5,
				Word:              &model.PublicWordContent{Hint: "spits", Theme: "Trivia", Length: 5},
				Attempts:          []*model.Attempt{},
				AttemptsRemaining: 5,
			},
		},
	}

	t.Run("Anonymous", func(t *testing.T) {
		cs := &mocks.MockDailyChallengeService{}
		cs.On("GetTodaySummary", mock.Anything, (*int64)(nil)).Return(summary, nil)
		r := newRouter(cs, &mocks.MockUserService{})

		w := do(r, http.MethodGet, "/api/v1/challenges/today", "", false)
		require.Equal(t, http.StatusOK, w.Code)

		var resp DailySummaryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2025-03-10", resp.Date)
		require.Len(t, resp.Challenges, 1)
		assert.Equal(t, 5, resp.Challenges[0].Word.Length)
		assert.NotContains(t, w.Body.String(), "solution")
		cs.AssertExpectations(t)
	})

	t.Run("Known player", func(t *testing.T) {
		cs := &mocks.MockDailyChallengeService{}
		cs.On("GetTodaySummary", mock.Anything, mock.MatchedBy(func(id *int64) bool {
			return id != nil && *id == playerID
		})).Return(summary, nil)
		r := newRouter(cs, knownPlayer())

		w := do(r, http.MethodGet, "/api/v1/challenges/today", "", true)
		assert.Equal(t, http.StatusOK, w.Code)
		cs.AssertExpectations(t)
	})
}

func TestGetLeaderboard(t *testing.T) {
	entries := []*model.LeaderboardEntry{
		{Rank: 1, User: model.User{ID: 8, DisplayName: "Bo"}, Value: 250, Display: "250 ms", Detail: "1 attempt"},
	}

	tests := []struct {
		name       string
		path       string
		mockSetup  func(cs *mocks.MockDailyChallengeService)
		wantStatus int
	}{
		{
			name: "Default window",
			path: "/api/v1/challenges/leaderboard/reaction",
			mockSetup: func(cs *mocks.MockDailyChallengeService) {
				cs.On("GetLeaderboard", mock.Anything, model.ModeReaction, 7).Return(entries, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Non numeric window",
			path:       "/api/v1/challenges/leaderboard/word?window=week",
			mockSetup:  func(cs *mocks.MockDailyChallengeService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Window out of range",
			path: "/api/v1/challenges/leaderboard/word?window=365",
			mockSetup: func(cs *mocks.MockDailyChallengeService) {
				cs.On("GetLeaderboard", mock.Anything, model.ModeWord, 365).Return(nil, service.ErrInvalidInput)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown mode",
			path: "/api/v1/challenges/leaderboard/chess",
			mockSetup: func(cs *mocks.MockDailyChallengeService) {
				cs.On("GetLeaderboard", mock.Anything, model.Mode("chess"), 7).Return(nil, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &mocks.MockDailyChallengeService{}
			tt.mockSetup(cs)
			r := newRouter(cs, &mocks.MockUserService{})

			w := do(r, http.MethodGet, tt.path, "", false)
			assert.Equal(t, tt.wantStatus, w.Code)
			cs.AssertExpectations(t)

			if tt.wantStatus == http.StatusOK {
				var resp LeaderboardResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, 7, resp.WindowDays)
				assert.Equal(t, entries, resp.Entries)
			}
		})
	}
}

func TestGetMe(t *testing.T) {
	r := newRouter(&mocks.MockDailyChallengeService{}, knownPlayer())

	w := do(r, http.MethodGet, "/api/v1/users/me", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_name":"Ada"`)
}
