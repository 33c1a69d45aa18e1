package models

// AutomodSettings stores the automatic moderation thresholds of a guild.
type AutomodSettings struct {
	GuildID           int64 `gorm:"primaryKey;autoIncrement:false"` // Owning guild.
	AutobanEnabled    bool  `gorm:"not null;default:false"`         // Ban once the warn threshold is hit.
	AutobanThreshold  int32 `gorm:"not null;default:0"`             // Warns before an automatic ban.
	AutokickEnabled   bool  `gorm:"not null;default:false"`         // Kick once the warn threshold is hit.
	AutokickThreshold int32 `gorm:"not null;default:0"`             // Warns before an automatic kick.
}

// TableName returns the automod settings table name.
func (AutomodSettings) TableName() string {
	return "automod_settings"
}
