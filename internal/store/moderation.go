package store

import (
	"context"

	"github.com/router-for-me/guildrpc/internal/models"
	"gorm.io/gorm"
)

var automodSettingsColumns = []string{"autoban_enabled", "autoban_threshold", "autokick_enabled", "autokick_threshold"}

// NewWarn holds the caller-supplied fields of a warning.
type NewWarn struct {
	GuildID       int64
	StaffMemberID int64
	TargetUserID  int64
	Reason        string
}

// ModerationStore manages automod settings and warning history.
type ModerationStore struct {
	db    *gorm.DB
	warns history[models.Warn]
}

// NewModerationStore constructs a ModerationStore on the shared pool.
func NewModerationStore(db *gorm.DB) *ModerationStore {
	return &ModerationStore{
		db:    db,
		warns: history[models.Warn]{conn: db, subjectColumn: "target_user_id"},
	}
}

// UpsertSettings stores automod settings, replacing every field of an existing row.
func (s *ModerationStore) UpsertSettings(ctx context.Context, settings models.AutomodSettings) error {
	return wrapError("upsert", "automod settings", upsertByGuild(ctx, s.db, &settings, automodSettingsColumns))
}

// GetSettings returns the automod settings of a guild or ErrNotFound.
func (s *ModerationStore) GetSettings(ctx context.Context, guildID int64) (*models.AutomodSettings, error) {
	row, err := takeByGuild[models.AutomodSettings](ctx, s.db, guildID)
	if err != nil {
		return nil, wrapError("get", "automod settings", err)
	}
	return row, nil
}

// CreateWarn appends a warning to the target's history.
func (s *ModerationStore) CreateWarn(ctx context.Context, in NewWarn) error {
	row := models.Warn{
		GuildID:       in.GuildID,
		StaffMemberID: in.StaffMemberID,
		TargetUserID:  in.TargetUserID,
		Reason:        in.Reason,
	}
	return wrapError("create", "warn", s.warns.create(ctx, &row))
}

// LatestWarn returns the target's most recent warning or ErrNotFound.
func (s *ModerationStore) LatestWarn(ctx context.Context, guildID, targetUserID int64) (*models.Warn, error) {
	row, err := s.warns.latest(ctx, guildID, targetUserID)
	if err != nil {
		return nil, wrapError("get latest", "warn", err)
	}
	return row, nil
}

// RecentWarns returns the target's HistoryLimit most recent warnings, oldest first.
func (s *ModerationStore) RecentWarns(ctx context.Context, guildID, targetUserID int64) ([]models.Warn, error) {
	rows, err := s.warns.recent(ctx, guildID, targetUserID, HistoryLimit)
	if err != nil {
		return nil, wrapError("list", "warn", err)
	}
	return rows, nil
}

// DeleteLatestWarn removes the target's most recent warning, or reports
// ErrNotFound when the target has none.
func (s *ModerationStore) DeleteLatestWarn(ctx context.Context, guildID, targetUserID int64) error {
	return wrapError("delete latest", "warn", s.warns.deleteLatest(ctx, guildID, targetUserID))
}
