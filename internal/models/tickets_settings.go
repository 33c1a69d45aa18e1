package models

// TicketsSettings stores the support ticket configuration of a guild.
type TicketsSettings struct {
	GuildID   int64 `gorm:"primaryKey;autoIncrement:false"` // Owning guild.
	Enabled   bool  `gorm:"not null;default:false"`         // Whether tickets can be opened.
	ChannelID int64 `gorm:"not null;default:0"`             // Channel tickets are posted to.
}

// TableName returns the tickets settings table name.
func (TicketsSettings) TableName() string {
	return "tickets_settings"
}
