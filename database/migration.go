package database

import (
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/mytheresa/storefront-catalog/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every catalog table together with its
// foreign keys, unique indexes and check constraints.
func AutoMigrate(db *gorm.DB, log *gecho.Logger) error {
	log.Info("Starting GORM AutoMigrate")

	allModels := models.AllModels()
	if err := db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	migrator := db.Migrator()
	for _, model := range allModels {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		if !migrator.HasTable(model) {
			return fmt.Errorf("table %s was not created", stmt.Schema.Table)
		}
		log.Debug("Table ready", gecho.Field("table", stmt.Schema.Table))
	}

	log.Info("GORM AutoMigrate completed", gecho.Field("tables", len(allModels)))
	return nil
}
