package models

import "time"

// Warn is one entry of a member's warning history inside a guild.
type Warn struct {
	ID int64 `gorm:"primaryKey;autoIncrement"` // Primary key, breaks created_at ties.

	GuildID       int64 `gorm:"not null;index:idx_warn_subject,priority:1"` // Owning guild.
	TargetUserID  int64 `gorm:"not null;index:idx_warn_subject,priority:2"` // Warned member.
	StaffMemberID int64 `gorm:"not null"`                                   // Member who issued the warn.

	Reason string `gorm:"type:text;not null"` // Free-form reason.

	// Assigned by the store on insert.
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;index:idx_warn_subject,priority:3"`
}

// TableName keeps the singular table name used by existing deployments.
func (Warn) TableName() string {
	return "warn"
}
