package store

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/models"
	"gorm.io/gorm"
)

var logsSettingsColumns = []string{"enabled", "channel_id"}

// LogsSettingsStore manages the log channel settings of each guild.
type LogsSettingsStore struct {
	db *gorm.DB
}

// NewLogsSettingsStore constructs a LogsSettingsStore on the shared pool.
func NewLogsSettingsStore(db *gorm.DB) *LogsSettingsStore {
	return &LogsSettingsStore{db: db}
}

// Upsert stores settings, replacing every field of an existing row.
func (s *LogsSettingsStore) Upsert(ctx context.Context, settings models.LogsSettings) error {
	return wrapError("upsert", "logs settings", upsertByGuild(ctx, s.db, &settings, logsSettingsColumns))
}

// Get returns the settings of a guild or ErrNotFound.
func (s *LogsSettingsStore) Get(ctx context.Context, guildID int64) (*models.LogsSettings, error) {
	row, err := takeByGuild[models.LogsSettings](ctx, s.db, guildID)
	if err != nil {
		return nil, wrapError("get", "logs settings", err)
	}
	return row, nil
}
