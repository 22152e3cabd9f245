package models

import "gorm.io/gorm"

// Migrate creates the three tables with their foreign keys if they do not
// exist yet. Safe to call on every run; never drops existing structure.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Cart{},
		&CartProduct{},
	)
}
