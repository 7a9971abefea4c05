// Package audit stores the audit trail of mutations made through the API.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/booktracker/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetRecentEvents returns the latest events for a user, newest first.
func (r *Repository) GetRecentEvents(ctx context.Context, userID uint, limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []entities.AuditEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// GetEventsByType returns the latest events of one type for a user.
func (r *Repository) GetEventsByType(ctx context.Context, eventType entities.AuditEventType, userID uint, limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []entities.AuditEvent
	err := r.db.WithContext(ctx).
		Where("event_type = ? AND user_id = ?", eventType, userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
