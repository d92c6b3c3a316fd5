package utils

import (
	"os"
	"testing"

	"github.com/Nguyeniris123/JobApp/models"
	"github.com/Nguyeniris123/JobApp/storage"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCreateTokenPairUnknownUser(t *testing.T) {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testsecret2")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	storage.DB = db

	// A token pair must never be issued with a made-up role: an unknown
	// user fails the whole call instead of defaulting to candidate.
	if _, err := CreateTokenPair(999); err == nil {
		t.Fatal("expected error for unknown user, got a token pair")
	}
}
