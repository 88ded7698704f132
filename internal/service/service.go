package service

import (
	"context"
	"errors"
	"time"

	"gamelog_daily/internal/game"
	"gamelog_daily/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrAttemptsExhausted = errors.New("no attempts left for today's challenge")
	ErrAlreadyCompleted  = errors.New("today's challenge is already completed")
	ErrUserNotFound      = errors.New("user not found")
)

// Clock supplies the reference time. "Today" is derived from it once per request.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

func (c Clock) today() time.Time {
	return game.StartOfDay(c.now())
}

type Service struct {
	*ChallengeService
	*AttemptService
	*LeaderboardService
	*SummaryService
	*UserService
}

func NewService(
	challengeService *ChallengeService,
	attemptService *AttemptService,
	leaderboardService *LeaderboardService,
	summaryService *SummaryService,
	userService *UserService,
) *Service {
	return &Service{
		ChallengeService:   challengeService,
		AttemptService:     attemptService,
		LeaderboardService: leaderboardService,
		SummaryService:     summaryService,
		UserService:        userService,
	}
}

type ChallengeServiceI interface {
	EnsureChallenges(ctx context.Context, date time.Time) ([]*model.Challenge, error)
	GetChallenge(ctx context.Context, date time.Time, mode model.Mode) (*model.Challenge, error)
}

type AttemptServiceI interface {
	SubmitWordGuess(ctx context.Context, userID int64, guess string) (*model.SubmissionResult, error)
	SubmitMemoryResult(ctx context.Context, userID int64, moves, mistakes int, durationMs int64) (*model.SubmissionResult, error)
	SubmitReactionResult(ctx context.Context, userID int64, durationMs int64) (*model.SubmissionResult, error)
}

type LeaderboardServiceI interface {
	GetLeaderboard(ctx context.Context, mode model.Mode, windowDays int) ([]*model.LeaderboardEntry, error)
}

type SummaryServiceI interface {
	GetTodaySummary(ctx context.Context, userID *int64) (*model.DailySummary, error)
}

type UserServiceI interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// DailyChallengeServiceI is everything the transport layer calls.
type DailyChallengeServiceI interface {
	AttemptServiceI
	LeaderboardServiceI
	SummaryServiceI
}

type ContentSelector interface {
	Select(date time.Time, mode model.Mode) (model.Content, error)
	Version(mode model.Mode) int
}

type ChallengeRepository interface {
	GetChallenge(ctx context.Context, date time.Time, mode model.Mode) (*model.Challenge, error)
	ListChallenges(ctx context.Context, date time.Time) ([]*model.Challenge, error)
	CreateChallenge(ctx context.Context, challenge *model.Challenge) error
}

type AttemptRepository interface {
	ListAttempts(ctx context.Context, challengeID uuid.UUID, userID int64) ([]*model.Attempt, error)
	CreateAttempt(ctx context.Context, attempt *model.Attempt) error
}

type WinHistoryRepository interface {
	ListWinDates(ctx context.Context, userID int64, mode model.Mode, from, to time.Time) ([]time.Time, error)
}

type LeaderboardRepository interface {
	ListLeaderboardAttempts(ctx context.Context, mode model.Mode, from, to time.Time) ([]*model.LeaderboardAttempt, error)
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*model.User, error)
}

type StreakReader interface {
	Streak(ctx context.Context, userID int64, mode model.Mode, today time.Time) (int, error)
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

type LeaderboardCache interface {
	Get(ctx context.Context, key string) ([]*model.LeaderboardEntry, bool, error)
	Set(ctx context.Context, key string, entries []*model.LeaderboardEntry) error
}

func supported(mode model.Mode) bool {
	_, ok := model.ParseMode(string(mode))
	return ok
}
