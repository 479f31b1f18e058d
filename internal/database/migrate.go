package database

import (
	"gorm.io/gorm"

	"github.com/myrecipebox/backend/internal/models"
)

// Migrate brings the schema up to date. The composite unique indexes on
// (user_id, name) and (user_id, recipe_id) are part of the data integrity
// story, not an optimization.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Favorite{},
	)
}
