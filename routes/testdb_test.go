package routes

import (
	"testing"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global storage handle at a fresh in-memory database
// with the full schema, so handlers run against real constraints.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyImage{},
		&models.JobPost{},
		&models.Application{},
		&models.Follow{},
		&models.Review{},
		&models.VerificationDocument{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	storage.DB = db
	return db
}
