package db

import (
	"fmt"

	"github.com/router-for-me/guildrpc/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// schemaModels lists every table owned by the service, in creation order.
func schemaModels() []any {
	return []any{
		&models.Guild{},
		&models.LogsSettings{},
		&models.AutomodSettings{},
		&models.Warn{},
		&models.TicketsSettings{},
		&models.Ticket{},
	}
}

// Migrate creates or updates the tables and indexes the service needs.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: migrate: nil connection")
	}
	for _, model := range schemaModels() {
		if errMigrate := conn.AutoMigrate(model); errMigrate != nil {
			return fmt.Errorf("db: migrate %T: %w", model, errMigrate)
		}
	}
	log.Debugf("db: schema migrated (dialect=%s)", DialectName(conn))
	return nil
}
