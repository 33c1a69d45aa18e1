package models

// LogsSettings stores the log channel configuration of a guild.
type LogsSettings struct {
	GuildID   int64 `gorm:"primaryKey;autoIncrement:false"` // Owning guild.
	Enabled   bool  `gorm:"not null;default:false"`         // Whether logging is on.
	ChannelID int64 `gorm:"not null;default:0"`             // Target log channel.
}

// TableName returns the logs settings table name.
func (LogsSettings) TableName() string {
	return "logs_settings"
}
