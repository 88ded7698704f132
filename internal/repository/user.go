package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamelog_daily/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type User struct {
	ID          int64  `db:"id"`
	DisplayName string `db:"display_name"`
	AvatarURL   string `db:"avatar_url"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("id", "display_name", "avatar_url").
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

// GetUsersByIDs resolves identities in one round trip. Unknown ids are absent from the map.
func (r *Repository) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	users := make(map[int64]*model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query, args, err := squirrel.
		Select("id", "display_name", "avatar_url").
		From("users").
		Where("id = ANY(?)", pq.Array(ids)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	var rows []User
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	for i := range rows {
		users[rows[i].ID] = rows[i].toModel()
	}

	return users, nil
}

// UpsertUsers imports identity snapshots in one transaction. The engine itself
// never writes users; this backs the import command and tests.
func (r *Repository) UpsertUsers(ctx context.Context, users []*model.User) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		for _, user := range users {
			query, args, err := squirrel.
				Insert("users").
				Columns("id", "display_name", "avatar_url").
				Values(user.ID, user.DisplayName, user.AvatarURL).
				Suffix("ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name, avatar_url = EXCLUDED.avatar_url").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to upsert user %d: %w", user.ID, err)
			}
		}
		return nil
	})
}
