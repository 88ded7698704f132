package mocks

import (
	"context"
	"time"

	"gamelog_daily/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) GetChallenge(ctx context.Context, date time.Time, mode model.Mode) (*model.Challenge, error) {
	args := m.Called(ctx, date, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) ListChallenges(ctx context.Context, date time.Time) ([]*model.Challenge, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) CreateChallenge(ctx context.Context, challenge *model.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) ListAttempts(ctx context.Context, challengeID uuid.UUID, userID int64) ([]*model.Attempt, error) {
	args := m.Called(ctx, challengeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) CreateAttempt(ctx context.Context, attempt *model.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListWinDates(ctx context.Context, userID int64, mode model.Mode, from, to time.Time) ([]time.Time, error) {
	args := m.Called(ctx, userID, mode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) ListLeaderboardAttempts(ctx context.Context, mode model.Mode, from, to time.Time) ([]*model.LeaderboardAttempt, error) {
	args := m.Called(ctx, mode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardAttempt), args.Error(1)
}

func (m *MockLeaderboardRepository) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*model.User), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context, key string) ([]*model.LeaderboardEntry, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardCache) Set(ctx context.Context, key string, entries []*model.LeaderboardEntry) error {
	args := m.Called(ctx, key, entries)
	return args.Error(0)
}
