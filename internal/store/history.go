package store

import (
	"context"

	"gorm.io/gorm"
)

// Newest first. id breaks ties between rows sharing a created_at value.
const newestFirst = "created_at DESC, id DESC"

// history addresses an append-only table whose rows belong to a (guild, subject) pair.
type history[T any] struct {
	conn          *gorm.DB
	subjectColumn string
}

func (h history[T]) scope(db *gorm.DB, guildID, subjectID int64) *gorm.DB {
	return db.Where("guild_id = ?", guildID).Where(h.subjectColumn+" = ?", subjectID)
}

// create appends row; created_at is filled in by the column default.
func (h history[T]) create(ctx context.Context, row *T) error {
	return h.conn.WithContext(detach(ctx)).Create(row).Error
}

// latest returns the newest row of the pair.
func (h history[T]) latest(ctx context.Context, guildID, subjectID int64) (*T, error) {
	var row T
	q := h.scope(h.conn.WithContext(detach(ctx)), guildID, subjectID)
	if err := q.Order(newestFirst).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// recent returns up to limit of the newest rows, oldest first.
func (h history[T]) recent(ctx context.Context, guildID, subjectID int64, limit int) ([]T, error) {
	rows := make([]T, 0, limit)
	q := h.scope(h.conn.WithContext(detach(ctx)), guildID, subjectID)
	if err := q.Order(newestFirst).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// deleteLatest removes the newest row of the pair. The row is located by a
// subquery of the same DELETE so a concurrent insert cannot slip in between.
func (h history[T]) deleteLatest(ctx context.Context, guildID, subjectID int64) error {
	db := h.conn.WithContext(detach(ctx))
	newest := h.scope(h.conn.Model(new(T)), guildID, subjectID).
		Select("id").
		Order(newestFirst).
		Limit(1)

	res := db.Where("id = (?)", newest).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
