package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gamelog_daily/internal/model"
	"gamelog_daily/pkg/logger"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Attempt struct {
	ID            uuid.UUID     `db:"id"`
	ChallengeID   uuid.UUID     `db:"challenge_id"`
	UserID        int64         `db:"user_id"`
	AttemptNumber int           `db:"attempt_number"`
	Won           bool          `db:"won"`
	Score         sql.NullInt64 `db:"score"`
	DurationMs    sql.NullInt64 `db:"duration_ms"`
	Payload       []byte        `db:"payload"`
	CreatedAt     time.Time     `db:"created_at"`
}

type leaderboardAttempt struct {
	UserID     int64         `db:"user_id"`
	Won        bool          `db:"won"`
	Score      sql.NullInt64 `db:"score"`
	DurationMs sql.NullInt64 `db:"duration_ms"`
	CreatedAt  time.Time     `db:"created_at"`
}

func nullableDuration(d sql.NullInt64) *int64 {
	if !d.Valid {
		return nil
	}
	v := d.Int64
	return &v
}

func (a *Attempt) toModel() *model.Attempt {
	out := &model.Attempt{
		ID:            a.ID,
		ChallengeID:   a.ChallengeID,
		UserID:        a.UserID,
		AttemptNumber: a.AttemptNumber,
		Won:           a.Won,
		Score:         int(a.Score.Int64),
		DurationMs:    nullableDuration(a.DurationMs),
		CreatedAt:     a.CreatedAt,
	}

	if len(a.Payload) > 0 {
		if err := json.Unmarshal(a.Payload, &out.Payload); err != nil {
			logger.Logger().Warn("failed to decode attempt payload",
				zap.String("attempt_id", a.ID.String()),
				zap.Error(err))
		}
	}

	return out
}

// ListAttempts returns the user's attempts on a challenge ordered by attempt number.
func (r *Repository) ListAttempts(ctx context.Context, challengeID uuid.UUID, userID int64) ([]*model.Attempt, error) {
	query, args, err := squirrel.
		Select("id", "challenge_id", "user_id", "attempt_number", "won", "score", "duration_ms", "payload", "created_at").
		From("challenge_attempts").
		Where(squirrel.Eq{
			"challenge_id": challengeID,
			"user_id":      userID,
		}).
		OrderBy("attempt_number").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []Attempt
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]*model.Attempt, len(rows))
	for i := range rows {
		attempts[i] = rows[i].toModel()
	}

	return attempts, nil
}

// CreateAttempt appends an attempt. A duplicate attempt number or a second win for
// the same user and challenge yields ErrConflict.
func (r *Repository) CreateAttempt(ctx context.Context, attempt *model.Attempt) error {
	payload, err := json.Marshal(attempt.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode attempt payload: %w", err)
	}

	var duration interface{}
	if attempt.DurationMs != nil {
		duration = *attempt.DurationMs
	}

	query, args, err := squirrel.
		Insert("challenge_attempts").
		SetMap(map[string]interface{}{
			"id":             attempt.ID,
			"challenge_id":   attempt.ChallengeID,
			"user_id":        attempt.UserID,
			"attempt_number": attempt.AttemptNumber,
			"won":            attempt.Won,
			"score":          attempt.Score,
			"duration_ms":    duration,
			"payload":        string(payload),
			"created_at":     attempt.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attempt insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert attempt: %w", err)
	}

	return nil
}

// ListWinDates returns the challenge dates in [from, to] on which the user won in mode.
func (r *Repository) ListWinDates(ctx context.Context, userID int64, mode model.Mode, from, to time.Time) ([]time.Time, error) {
	query, args, err := squirrel.
		Select("DISTINCT c.challenge_date").
		From("challenge_attempts a").
		Join("daily_challenges c ON c.id = a.challenge_id").
		Where(squirrel.Eq{
			"a.user_id": userID,
			"a.won":     true,
			"c.mode":    string(mode),
		}).
		Where(squirrel.GtOrEq{"c.challenge_date": from}).
		Where(squirrel.LtOrEq{"c.challenge_date": to}).
		OrderBy("c.challenge_date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	err = r.db.SelectContext(ctx, &dates, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list win dates: %w", err)
	}

	for i := range dates {
		dates[i] = dates[i].UTC()
	}

	return dates, nil
}

// ListLeaderboardAttempts scans every attempt on mode's challenges dated within
// [from, to], in insertion order.
func (r *Repository) ListLeaderboardAttempts(ctx context.Context, mode model.Mode, from, to time.Time) ([]*model.LeaderboardAttempt, error) {
	query, args, err := squirrel.
		Select("a.user_id", "a.won", "a.score", "a.duration_ms", "a.created_at").
		From("challenge_attempts a").
		Join("daily_challenges c ON c.id = a.challenge_id").
		Where(squirrel.Eq{"c.mode": string(mode)}).
		Where(squirrel.GtOrEq{"c.challenge_date": from}).
		Where(squirrel.LtOrEq{"c.challenge_date": to}).
		OrderBy("a.created_at", "a.attempt_number").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardAttempt
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan leaderboard attempts: %w", err)
	}

	attempts := make([]*model.LeaderboardAttempt, len(rows))
	for i, row := range rows {
		attempts[i] = &model.LeaderboardAttempt{
			UserID:     row.UserID,
			Won:        row.Won,
			Score:      int(row.Score.Int64),
			DurationMs: nullableDuration(row.DurationMs),
			CreatedAt:  row.CreatedAt,
		}
	}

	return attempts, nil
}
