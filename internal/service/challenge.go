package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamelog_daily/internal/game"
	"gamelog_daily/internal/model"
	"gamelog_daily/internal/repository"
	"gamelog_daily/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChallengeService struct {
	repo    ChallengeRepository
	content ContentSelector
	clock   Clock
}

func NewChallengeService(repo ChallengeRepository, content ContentSelector, clock Clock) *ChallengeService {
	return &ChallengeService{
		repo:    repo,
		content: content,
		clock:   clock,
	}
}

// EnsureChallenges makes sure every supported mode has a challenge stored for the
// date and returns them in presentation order.
func (s *ChallengeService) EnsureChallenges(ctx context.Context, date time.Time) ([]*model.Challenge, error) {
	date = game.StartOfDay(date)

	stored, err := s.repo.ListChallenges(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	byMode := make(map[model.Mode]*model.Challenge, len(stored))
	for _, c := range stored {
		byMode[c.Mode] = c
	}

	challenges := make([]*model.Challenge, 0, len(model.Modes))
	for _, mode := range model.Modes {
		c, ok := byMode[mode]
		if !ok {
			c, err = s.create(ctx, date, mode)
			if err != nil {
				return nil, err
			}
		}
		challenges = append(challenges, c)
	}

	return challenges, nil
}

func (s *ChallengeService) create(ctx context.Context, date time.Time, mode model.Mode) (*model.Challenge, error) {
	content, err := s.content.Select(date, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s content: %w", mode, err)
	}

	challenge := &model.Challenge{
		ID:             uuid.New(),
		Date:           date,
		Mode:           mode,
		Content:        content,
		ContentVersion: s.content.Version(mode),
		CreatedAt:      s.clock.now(),
	}

	err = s.repo.CreateChallenge(ctx, challenge)
	if errors.Is(err, repository.ErrConflict) {
		// another request stored it first
		winner, err := s.repo.GetChallenge(ctx, date, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s challenge after conflict: %w", mode, err)
		}
		return winner, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s challenge: %w", mode, err)
	}

	logger.Logger().Info("Daily challenge created",
		zap.String("mode", string(mode)),
		zap.Time("date", date),
		zap.Int("content_version", challenge.ContentVersion),
	)

	return challenge, nil
}

func (s *ChallengeService) GetChallenge(ctx context.Context, date time.Time, mode model.Mode) (*model.Challenge, error) {
	if !supported(mode) {
		return nil, fmt.Errorf("%w: unsupported mode %q", ErrNotFound, mode)
	}

	challenges, err := s.EnsureChallenges(ctx, date)
	if err != nil {
		return nil, err
	}

	for _, c := range challenges {
		if c.Mode == mode {
			return c, nil
		}
	}

	return nil, fmt.Errorf("%w: %s challenge missing after ensure", ErrNotFound, mode)
}
