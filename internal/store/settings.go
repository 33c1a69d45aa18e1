package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertByGuild inserts row, or overwrites the given columns of the row already
// stored for the same guild, in one INSERT ... ON CONFLICT statement.
func upsertByGuild(ctx context.Context, conn *gorm.DB, row any, columns []string) error {
	return conn.WithContext(detach(ctx)).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(row).Error
}

// takeByGuild loads the single settings row of a guild.
func takeByGuild[T any](ctx context.Context, conn *gorm.DB, guildID int64) (*T, error) {
	var row T
	if err := conn.WithContext(detach(ctx)).Where("guild_id = ?", guildID).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
