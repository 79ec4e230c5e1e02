package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/colonial-go/internal/infrastructure/database"
)

// NewTestDB returns a migrated in-memory SQLite store closed with the test
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
