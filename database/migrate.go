package database

import (
	"munext_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate выполняет миграцию всех моделей.
// UUID первичных ключей генерирует БД, нужно расширение uuid-ossp.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.StudentProfile{},
		&models.EmployerProfile{},
		&models.Job{},
		&models.ScreeningQuestion{},
		&models.Application{},
		&models.Notification{},
	)
}
