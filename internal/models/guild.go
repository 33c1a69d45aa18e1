package models

// Guild records that a community is known to the service.
type Guild struct {
	GuildID int64 `gorm:"primaryKey;autoIncrement:false"` // Community identifier.
}

// TableName keeps the singular table name used by existing deployments.
func (Guild) TableName() string {
	return "guild"
}
