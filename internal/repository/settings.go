package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/trtslyr/islajournal/internal/domain"
)

const (
	settingProfileFileID   = "profile_file_id"
	settingSelectedFileIDs = "selected_file_ids"
	settingTokenBudget     = "token_budget"
)

// SettingsRepository stores context configuration as key/value pairs and
// resolves the profile text through the designated profile file.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *SettingsRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// ContextSettings loads the stored context configuration. Missing keys fall
// back to zero values; the context builder applies its own defaults.
func (r *SettingsRepository) ContextSettings(ctx context.Context) (domain.ContextSettings, error) {
	var settings domain.ContextSettings

	if raw, ok, err := r.get(ctx, settingSelectedFileIDs); err != nil {
		return settings, err
	} else if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &settings.SelectedFileIDs); err != nil {
			return settings, fmt.Errorf("failed to decode selected file ids: %w", err)
		}
	}

	if v, ok, err := r.get(ctx, settingProfileFileID); err != nil {
		return settings, err
	} else if ok {
		settings.ProfileFileID = v
	}

	if v, ok, err := r.get(ctx, settingTokenBudget); err != nil {
		return settings, err
	} else if ok {
		budget, err := strconv.Atoi(v)
		if err != nil {
			return settings, fmt.Errorf("failed to decode token budget: %w", err)
		}
		settings.TokenBudget = budget
	}

	return settings, nil
}

func (r *SettingsRepository) SaveContextSettings(ctx context.Context, settings domain.ContextSettings) error {
	ids, err := json.Marshal(settings.SelectedFileIDs)
	if err != nil {
		return fmt.Errorf("failed to encode selected file ids: %w", err)
	}
	if err := r.set(ctx, settingSelectedFileIDs, string(ids)); err != nil {
		return err
	}
	if err := r.set(ctx, settingProfileFileID, settings.ProfileFileID); err != nil {
		return err
	}
	return r.set(ctx, settingTokenBudget, strconv.Itoa(settings.TokenBudget))
}

// Profile returns the content of the designated profile file. When no
// profile file is configured, or the configured file no longer exists,
// it reports domain.ErrProfileNotFound.
func (r *SettingsRepository) Profile(ctx context.Context) (string, error) {
	id, ok, err := r.get(ctx, settingProfileFileID)
	if err != nil {
		return "", err
	}
	if !ok || id == "" {
		return "", domain.ErrProfileNotFound
	}

	var content string
	err = r.db.QueryRowContext(ctx, `SELECT content FROM files WHERE id = ?`, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrProfileNotFound
	}
	if err != nil {
		return "", err
	}
	return content, nil
}
