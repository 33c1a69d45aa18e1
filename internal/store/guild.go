package store

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuildStore tracks which guilds exist.
type GuildStore struct {
	db *gorm.DB // Shared connection pool.
}

// NewGuildStore constructs a GuildStore on the shared pool.
func NewGuildStore(db *gorm.DB) *GuildStore {
	return &GuildStore{db: db}
}

// Create records a guild. Creating a known guild is a no-op.
func (s *GuildStore) Create(ctx context.Context, guildID int64) error {
	err := s.db.WithContext(detach(ctx)).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Guild{GuildID: guildID}).Error
	return wrapError("create", "guild", err)
}

// Delete makes sure the guild is absent. Deleting an unknown guild succeeds.
// Settings and history rows of the guild are left alone.
func (s *GuildStore) Delete(ctx context.Context, guildID int64) error {
	err := s.db.WithContext(detach(ctx)).
		Where("guild_id = ?", guildID).
		Delete(&models.Guild{}).Error
	return wrapError("delete", "guild", err)
}
