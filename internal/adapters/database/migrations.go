package database

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables owned by this package
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{}, &SearchHistoryModel{})
}
