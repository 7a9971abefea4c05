package audit

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/booktracker/internal/database/audit"
	"github.com/mrlokans/booktracker/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "audit.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewService(auditRepo.NewRepository(db)), db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		UserID:      1,
		EventType:   entities.AuditEventBookTracked,
		Description: "Tracked book: Dune",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(context.Background(), event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "Tracked book: Dune", saved.Description)
}

func TestService_LogBookTracked(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogBookTracked(1, 7, "Dune", "read", "req-1")
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("event_type = ?", entities.AuditEventBookTracked).First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, "book", event.EntityType)
	require.NotNil(t, event.EntityID)
	assert.Equal(t, uint(7), *event.EntityID)

	var metadata map[string]any
	require.NoError(t, json.Unmarshal([]byte(event.Metadata), &metadata))
	assert.Equal(t, "read", metadata["status"])
}

func TestService_LogStatusAndProfile(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogStatusUpdated(1, 3, []string{"current_page", "notes"}, "req-2")
	svc.LogBookRemoved(1, 3, "req-3")
	svc.LogProfileUpdated(1, []string{"email"}, "req-4")
	svc.Wait()

	var count int64
	require.NoError(t, db.Model(&entities.AuditEvent{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	var status entities.AuditEvent
	require.NoError(t, db.Where("event_type = ?", entities.AuditEventStatusUpdated).First(&status).Error)
	assert.Contains(t, status.Metadata, "current_page")

	var profile entities.AuditEvent
	require.NoError(t, db.Where("event_type = ?", entities.AuditEventProfile).First(&profile).Error)
	assert.Equal(t, "user", profile.EntityType)
}

func TestService_GetRecentEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Log(ctx, &entities.AuditEvent{
			UserID:    1,
			EventType: entities.AuditEventBookRemoved,
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: 2, EventType: entities.AuditEventProfile}))

	events, err := svc.GetRecentEvents(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].CreatedAt.After(events[2].CreatedAt))

	byType, err := svc.GetEventsByType(ctx, entities.AuditEventProfile, 2, 10)
	require.NoError(t, err)
	assert.Len(t, byType, 1)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: 1, EventType: entities.AuditEventBookTracked, CreatedAt: time.Now().Add(-40 * 24 * time.Hour)}))
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: 1, EventType: entities.AuditEventBookTracked}))

	deleted, err := svc.DeleteOldEvents(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, db.Model(&entities.AuditEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestService_NilIsNoop(t *testing.T) {
	var svc *Service

	svc.LogBookTracked(1, 1, "Dune", "read", "")
	svc.Wait()

	events, err := svc.GetRecentEvents(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Empty(t, events)

	deleted, err := svc.DeleteOldEvents(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
