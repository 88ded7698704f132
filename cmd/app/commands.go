package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gamelog_daily/internal/model"
	"gamelog_daily/internal/repository"
	"gamelog_daily/pkg/logger"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const usage = "usage: app [migrate | users import <file.json>]"

func runCommand(cfg *Config, args []string) error {
	switch args[0] {
	case "migrate":
		return repository.Migrate(cfg.Database.GetDatabaseURL())
	case "users":
		if len(args) != 3 || args[1] != "import" {
			return errors.New(usage)
		}
		return importUsers(context.Background(), cfg, args[2])
	default:
		return fmt.Errorf("unknown command %q, %s", args[0], usage)
	}
}

// importUsers loads an identity snapshot: a JSON array of
// {"id", "display_name", "avatar_url"} objects.
func importUsers(ctx context.Context, cfg *Config, path string) error {
	users, err := readUsers(path)
	if err != nil {
		return err
	}

	repo, err := repository.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	if err := repo.UpsertUsers(ctx, users); err != nil {
		return err
	}

	logger.Logger().Info("Users imported", zap.Int("count", len(users)))
	return nil
}

func readUsers(path string) ([]*model.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var users []*model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	for i, u := range users {
		if u == nil || u.ID == 0 || u.DisplayName == "" {
			return nil, fmt.Errorf("user #%d needs an id and a display_name", i+1)
		}
	}

	return users, nil
}
