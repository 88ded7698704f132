package service

import (
	"context"
	"fmt"
	"time"

	"gamelog_daily/internal/game"
	"gamelog_daily/internal/model"
	"gamelog_daily/pkg/logger"

	"go.uber.org/zap"
)

const (
	DefaultLeaderboardWindow = 7
	MaxLeaderboardWindow     = 90
)

type LeaderboardService struct {
	repo  LeaderboardRepository
	cache LeaderboardCache
	clock Clock
}

// NewLeaderboardService builds the aggregator. cache may be nil.
func NewLeaderboardService(repo LeaderboardRepository, cache LeaderboardCache, clock Clock) *LeaderboardService {
	return &LeaderboardService{
		repo:  repo,
		cache: cache,
		clock: clock,
	}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, mode model.Mode, windowDays int) ([]*model.LeaderboardEntry, error) {
	if !supported(mode) {
		return nil, fmt.Errorf("%w: unsupported mode %q", ErrNotFound, mode)
	}
	if windowDays < 1 || windowDays > MaxLeaderboardWindow {
		return nil, fmt.Errorf("%w: window must be between 1 and %d days", ErrInvalidInput, MaxLeaderboardWindow)
	}

	today := s.clock.today()
	key := cacheKey(mode, windowDays, today)

	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Logger().Warn("Leaderboard cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return entries, nil
		}
	}

	from := today.AddDate(0, 0, -(windowDays - 1))
	attempts, err := s.repo.ListLeaderboardAttempts(ctx, mode, from, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard attempts: %w", err)
	}

	standings := game.RankStandings(mode, attempts)
	if len(standings) == 0 {
		return []*model.LeaderboardEntry{}, nil
	}

	ids := make([]int64, len(standings))
	for i, st := range standings {
		ids[i] = st.UserID
	}
	users, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard users: %w", err)
	}

	entries := make([]*model.LeaderboardEntry, len(standings))
	for i, st := range standings {
		display, detail := format(mode, st)
		entries[i] = &model.LeaderboardEntry{
			Rank:    i + 1,
			User:    lookupUser(users, st.UserID),
			Value:   st.Value,
			Display: display,
			Detail:  detail,
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, entries); err != nil {
			logger.Logger().Warn("Leaderboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return entries, nil
}

func cacheKey(mode model.Mode, windowDays int, today time.Time) string {
	return fmt.Sprintf("leaderboard:%s:%d:%s", mode, windowDays, today.Format(time.DateOnly))
}

func lookupUser(users map[int64]*model.User, id int64) model.User {
	if u, ok := users[id]; ok && u != nil {
		return *u
	}
	return model.User{ID: id, DisplayName: fmt.Sprintf("Player %d", id)}
}

func format(mode model.Mode, st game.Standing) (display, detail string) {
	switch mode {
	case model.ModeWord:
		return fmt.Sprintf("%d pts", st.Value), plural(st.Wins, "win")
	case model.ModeMemory:
		if st.BestDurationMs == nil {
			return fmt.Sprintf("%d pts", st.Value), "no time recorded"
		}
		return fmt.Sprintf("%d pts", st.Value), fmt.Sprintf("best time %.1fs", float64(*st.BestDurationMs)/1000)
	case model.ModeReaction:
		return fmt.Sprintf("%d ms", st.Value), plural(st.Attempts, "attempt")
	default:
		return fmt.Sprintf("%d", st.Value), ""
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
