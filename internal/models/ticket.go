package models

import "time"

// Ticket is one support request opened by a member of a guild.
type Ticket struct {
	ID int64 `gorm:"primaryKey;autoIncrement"` // Primary key, breaks created_at ties.

	GuildID  int64 `gorm:"not null;index:idx_ticket_subject,priority:1"` // Owning guild.
	AuthorID int64 `gorm:"not null;index:idx_ticket_subject,priority:2"` // Member who opened the ticket.

	Title string `gorm:"type:text;not null"` // Short summary.
	Info  string `gorm:"type:text;not null"` // Body of the request.

	// Assigned by the store on insert.
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;index:idx_ticket_subject,priority:3"`
}

// TableName keeps the singular table name used by existing deployments.
func (Ticket) TableName() string {
	return "ticket"
}
