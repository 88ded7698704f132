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

const (
	maxSubmitTries            = 3
	DefaultStreakLookbackDays = 30
)

type AttemptService struct {
	challenges   ChallengeServiceI
	repo         AttemptRepository
	wins         WinHistoryRepository
	clock        Clock
	lookbackDays int
}

func NewAttemptService(
	challenges ChallengeServiceI,
	repo AttemptRepository,
	wins WinHistoryRepository,
	clock Clock,
	lookbackDays int,
) *AttemptService {
	if lookbackDays <= 0 {
		lookbackDays = DefaultStreakLookbackDays
	}
	return &AttemptService{
		challenges:   challenges,
		repo:         repo,
		wins:         wins,
		clock:        clock,
		lookbackDays: lookbackDays,
	}
}

// outcome is what a submission records, minus the ledger bookkeeping.
type outcome struct {
	won        bool
	score      int
	durationMs *int64
	payload    model.AttemptPayload
	feedback   []model.LetterState
}

func (s *AttemptService) SubmitWordGuess(ctx context.Context, userID int64, guess string) (*model.SubmissionResult, error) {
	today := s.clock.today()

	challenge, err := s.challenges.GetChallenge(ctx, today, model.ModeWord)
	if err != nil {
		return nil, err
	}
	word := challenge.Content.Word
	if word == nil {
		return nil, fmt.Errorf("word challenge %s has no word content", challenge.ID)
	}

	normalized, err := game.NormalizeGuess(guess, word.Length)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	feedback, err := game.EvaluateGuess(word.Solution, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	won := game.IsSolved(word.Solution, normalized)

	return s.submit(ctx, userID, today, challenge, func(attemptNumber int) outcome {
		return outcome{
			won:   won,
			score: game.WordScore(attemptNumber, won),
			payload: model.AttemptPayload{
				Word: &model.WordPayload{Guess: normalized, Feedback: feedback},
			},
			feedback: feedback,
		}
	})
}

func (s *AttemptService) SubmitMemoryResult(ctx context.Context, userID int64, moves, mistakes int, durationMs int64) (*model.SubmissionResult, error) {
	switch {
	case moves <= 0:
		return nil, fmt.Errorf("%w: moves must be positive", ErrInvalidInput)
	case mistakes < 0:
		return nil, fmt.Errorf("%w: mistakes must not be negative", ErrInvalidInput)
	case durationMs <= 0:
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	today := s.clock.today()
	challenge, err := s.challenges.GetChallenge(ctx, today, model.ModeMemory)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, userID, today, challenge, func(int) outcome {
		return outcome{
			won:        true,
			score:      game.MemoryScore(moves, mistakes, durationMs),
			durationMs: &durationMs,
			payload: model.AttemptPayload{
				Memory: &model.MemoryPayload{Moves: moves, Mistakes: mistakes},
			},
		}
	})
}

func (s *AttemptService) SubmitReactionResult(ctx context.Context, userID int64, durationMs int64) (*model.SubmissionResult, error) {
	if durationMs <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	today := s.clock.today()
	challenge, err := s.challenges.GetChallenge(ctx, today, model.ModeReaction)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, userID, today, challenge, func(int) outcome {
		return outcome{
			won:        true,
			score:      game.ReactionScore(durationMs),
			durationMs: &durationMs,
			payload:    model.AttemptPayload{Reaction: &model.ReactionPayload{}},
		}
	})
}

// submit appends the next attempt. A conflicting insert means another request
// took the same attempt number, so the checks are re-run against fresh rows.
func (s *AttemptService) submit(
	ctx context.Context,
	userID int64,
	today time.Time,
	challenge *model.Challenge,
	build func(attemptNumber int) outcome,
) (*model.SubmissionResult, error) {
	maxAttempts := game.MaxAttempts(challenge.Mode)

	for try := 1; try <= maxSubmitTries; try++ {
		prior, err := s.repo.ListAttempts(ctx, challenge.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list attempts: %w", err)
		}

		if len(prior) >= maxAttempts {
			return nil, ErrAttemptsExhausted
		}
		if hasWin(prior) {
			return nil, ErrAlreadyCompleted
		}

		n := len(prior) + 1
		out := build(n)
		attempt := &model.Attempt{
			ID:            uuid.New(),
			ChallengeID:   challenge.ID,
			UserID:        userID,
			AttemptNumber: n,
			Won:           out.won,
			Score:         out.score,
			DurationMs:    out.durationMs,
			Payload:       out.payload,
			CreatedAt:     s.clock.now(),
		}

		err = s.repo.CreateAttempt(ctx, attempt)
		if errors.Is(err, repository.ErrConflict) {
			logger.Logger().Debug("Attempt insert conflicted, retrying",
				zap.Int64("user_id", userID),
				zap.String("mode", string(challenge.Mode)),
				zap.Int("try", try),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create attempt: %w", err)
		}

		return s.result(ctx, challenge, attempt, out.feedback, n, maxAttempts, today), nil
	}

	return nil, fmt.Errorf("failed to record attempt after %d conflicting writes", maxSubmitTries)
}

func (s *AttemptService) result(
	ctx context.Context,
	challenge *model.Challenge,
	attempt *model.Attempt,
	feedback []model.LetterState,
	used, maxAttempts int,
	today time.Time,
) *model.SubmissionResult {
	result := &model.SubmissionResult{
		Mode:              challenge.Mode,
		Attempt:           attempt,
		Feedback:          feedback,
		AttemptsUsed:      used,
		AttemptsRemaining: max(0, maxAttempts-used),
		Resolved:          attempt.Won || used >= maxAttempts,
	}
	if result.Resolved {
		result.Solution = solution(challenge)
	}

	// the attempt is already stored; a failed streak read only loses the counter
	streak, err := s.Streak(ctx, attempt.UserID, challenge.Mode, today)
	if err != nil {
		logger.Logger().Warn("Failed to compute streak",
			zap.Int64("user_id", attempt.UserID),
			zap.String("mode", string(challenge.Mode)),
			zap.Error(err),
		)
	}
	result.Streak = streak

	return result
}

// Streak counts consecutive won days ending today for the mode.
func (s *AttemptService) Streak(ctx context.Context, userID int64, mode model.Mode, today time.Time) (int, error) {
	today = game.StartOfDay(today)
	from := today.AddDate(0, 0, -(s.lookbackDays - 1))

	wins, err := s.wins.ListWinDates(ctx, userID, mode, from, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list win dates: %w", err)
	}

	return game.CurrentStreak(today, wins), nil
}

func hasWin(attempts []*model.Attempt) bool {
	for _, a := range attempts {
		if a.Won {
			return true
		}
	}
	return false
}

func solution(challenge *model.Challenge) *string {
	if challenge.Content.Word == nil {
		return nil
	}
	s := challenge.Content.Word.Solution
	return &s
}
