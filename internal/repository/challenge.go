package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gamelog_daily/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Challenge struct {
	ID             uuid.UUID `db:"id"`
	ChallengeDate  time.Time `db:"challenge_date"`
	Mode           string    `db:"mode"`
	Config         []byte    `db:"config"`
	ContentVersion int       `db:"content_version"`
	CreatedAt      time.Time `db:"created_at"`
}

var challengeColumns = []string{"id", "challenge_date", "mode", "config", "content_version", "created_at"}

func (c *Challenge) toModel() (*model.Challenge, error) {
	var content model.Content
	if err := json.Unmarshal(c.Config, &content); err != nil {
		return nil, fmt.Errorf("failed to decode challenge %s config: %w", c.ID, err)
	}

	return &model.Challenge{
		ID:             c.ID,
		Date:           c.ChallengeDate.UTC(),
		Mode:           model.Mode(c.Mode),
		Content:        content,
		ContentVersion: c.ContentVersion,
		CreatedAt:      c.CreatedAt,
	}, nil
}

func (r *Repository) GetChallenge(ctx context.Context, date time.Time, mode model.Mode) (*model.Challenge, error) {
	var challenge Challenge

	query, args, err := squirrel.
		Select(challengeColumns...).
		From("daily_challenges").
		Where(squirrel.Eq{
			"challenge_date": date,
			"mode":           string(mode),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &challenge, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return challenge.toModel()
}

func (r *Repository) ListChallenges(ctx context.Context, date time.Time) ([]*model.Challenge, error) {
	query, args, err := squirrel.
		Select(challengeColumns...).
		From("daily_challenges").
		Where(squirrel.Eq{"challenge_date": date}).
		OrderBy("mode").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []Challenge
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	challenges := make([]*model.Challenge, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}

	return challenges, nil
}

// CreateChallenge inserts the challenge unless one already exists for its date and
// mode, in which case ErrConflict is returned and nothing is written.
func (r *Repository) CreateChallenge(ctx context.Context, challenge *model.Challenge) error {
	config, err := json.Marshal(challenge.Content)
	if err != nil {
		return fmt.Errorf("failed to encode challenge config: %w", err)
	}

	query, args, err := squirrel.
		Insert("daily_challenges").
		SetMap(map[string]interface{}{
			"id":              challenge.ID,
			"challenge_date":  challenge.Date,
			"mode":            string(challenge.Mode),
			"config":          string(config),
			"content_version": challenge.ContentVersion,
			"created_at":      challenge.CreatedAt,
		}).
		Suffix("ON CONFLICT (challenge_date, mode) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build challenge insert query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert challenge: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrConflict
	}

	return nil
}
