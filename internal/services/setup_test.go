package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booktracker/internal/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	opts := database.DefaultOptions()
	opts.LogLevel = logger.Silent

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"), opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.DB
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
