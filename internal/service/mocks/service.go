package mocks

import (
	"context"

	"gamelog_daily/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockDailyChallengeService stands in for the service layer in handler tests.
type MockDailyChallengeService struct {
	mock.Mock
}

func (m *MockDailyChallengeService) SubmitWordGuess(ctx context.Context, userID int64, guess string) (*model.SubmissionResult, error) {
	args := m.Called(ctx, userID, guess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionResult), args.Error(1)
}

func (m *MockDailyChallengeService) SubmitMemoryResult(ctx context.Context, userID int64, moves, mistakes int, durationMs int64) (*model.SubmissionResult, error) {
	args := m.Called(ctx, userID, moves, mistakes, durationMs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionResult), args.Error(1)
}

func (m *MockDailyChallengeService) SubmitReactionResult(ctx context.Context, userID int64, durationMs int64) (*model.SubmissionResult, error) {
	args := m.Called(ctx, userID, durationMs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionResult), args.Error(1)
}

func (m *MockDailyChallengeService) GetLeaderboard(ctx context.Context, mode model.Mode, windowDays int) ([]*model.LeaderboardEntry, error) {
	args := m.Called(ctx, mode, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Error(1)
}

func (m *MockDailyChallengeService) GetTodaySummary(ctx context.Context, userID *int64) (*model.DailySummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailySummary), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
