package service

import (
	"context"
	"fmt"
	"time"

	"gamelog_daily/internal/game"
	"gamelog_daily/internal/model"
)

type SummaryService struct {
	challenges ChallengeServiceI
	attempts   AttemptRepository
	streaks    StreakReader
	clock      Clock
}

func NewSummaryService(challenges ChallengeServiceI, attempts AttemptRepository, streaks StreakReader, clock Clock) *SummaryService {
	return &SummaryService{
		challenges: challenges,
		attempts:   attempts,
		streaks:    streaks,
		clock:      clock,
	}
}

// GetTodaySummary presents today's challenges. Without a user only the public
// content is returned.
func (s *SummaryService) GetTodaySummary(ctx context.Context, userID *int64) (*model.DailySummary, error) {
	today := s.clock.today()

	challenges, err := s.challenges.EnsureChallenges(ctx, today)
	if err != nil {
		return nil, err
	}

	summary := &model.DailySummary{
		Date:       today,
		Challenges: make([]*model.ChallengeSummary, 0, len(challenges)),
	}

	for _, c := range challenges {
		cs := present(c)
		if userID != nil {
			if err := s.fillProgress(ctx, cs, c, *userID, today); err != nil {
				return nil, err
			}
		}
		summary.Challenges = append(summary.Challenges, cs)
	}

	return summary, nil
}

func present(c *model.Challenge) *model.ChallengeSummary {
	maxAttempts := game.MaxAttempts(c.Mode)
	cs := &model.ChallengeSummary{
		ChallengeID:       c.ID.String(),
		Mode:              c.Mode,
		MaxAttempts:       maxAttempts,
		Attempts:          []*model.Attempt{},
		AttemptsRemaining: maxAttempts,
	}

	switch {
	case c.Content.Word != nil:
		cs.Word = &model.PublicWordContent{
			Hint:   c.Content.Word.Hint,
			Theme:  c.Content.Word.Theme,
			Length: c.Content.Word.Length,
		}
	case c.Content.Memory != nil:
		deck := *c.Content.Memory
		deck.Cards = append([]string(nil), deck.Cards...)
		cs.Memory = &deck
	case c.Content.Reaction != nil:
		r := *c.Content.Reaction
		cs.Reaction = &r
	}

	return cs
}

func (s *SummaryService) fillProgress(ctx context.Context, cs *model.ChallengeSummary, c *model.Challenge, userID int64, today time.Time) error {
	attempts, err := s.attempts.ListAttempts(ctx, c.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to list %s attempts: %w", c.Mode, err)
	}

	used := len(attempts)
	cs.Attempts = attempts
	cs.AttemptsUsed = used
	cs.AttemptsRemaining = max(0, cs.MaxAttempts-used)
	cs.Completed = hasWin(attempts)
	cs.Resolved = cs.Completed || used >= cs.MaxAttempts
	if cs.Resolved {
		cs.Solution = solution(c)
	}

	for _, a := range attempts {
		if cs.BestScore == nil || a.Score > *cs.BestScore {
			score := a.Score
			cs.BestScore = &score
		}
	}

	streak, err := s.streaks.Streak(ctx, userID, c.Mode, today)
	if err != nil {
		return fmt.Errorf("failed to compute %s streak: %w", c.Mode, err)
	}
	cs.Streak = streak

	return nil
}
