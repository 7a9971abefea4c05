// Package audit records the trail of changes users make to their shelf and profile.
package audit

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/booktracker/internal/database/audit"
	"github.com/mrlokans/booktracker/internal/entities"
)

// RecentEventsLimit is how many events GetRecentEvents returns by default.
const RecentEventsLimit = 50

// Service provides high-level audit logging functionality.
// A nil *Service is valid and records nothing.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event passed to LogAsync has been written.
func (s *Service) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

// LogBookTracked records a book being added to or re-tracked on the shelf.
func (s *Service) LogBookTracked(userID, bookID uint, title, status, requestID string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventBookTracked,
		Description: "Tracked book: " + title,
		EntityType:  "book",
		EntityID:    &bookID,
		Metadata:    encodeMetadata(map[string]any{"status": status}),
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogStatusUpdated records a change to a reading status. fields lists the
// keys that were present in the update.
func (s *Service) LogStatusUpdated(userID, bookID uint, fields []string, requestID string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventStatusUpdated,
		Description: "Updated reading status",
		EntityType:  "book",
		EntityID:    &bookID,
		Metadata:    encodeMetadata(map[string]any{"fields": fields}),
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogBookRemoved records a book being removed from the shelf.
func (s *Service) LogBookRemoved(userID, bookID uint, requestID string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventBookRemoved,
		Description: "Removed book from shelf",
		EntityType:  "book",
		EntityID:    &bookID,
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogProfileUpdated records a profile change.
func (s *Service) LogProfileUpdated(userID uint, fields []string, requestID string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventProfile,
		Description: "Updated profile",
		EntityType:  "user",
		EntityID:    &userID,
		Metadata:    encodeMetadata(map[string]any{"fields": fields}),
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	})
}

// GetRecentEvents returns the user's latest events, newest first.
func (s *Service) GetRecentEvents(ctx context.Context, userID uint, limit int) ([]entities.AuditEvent, error) {
	if s == nil {
		return []entities.AuditEvent{}, nil
	}
	if limit <= 0 {
		limit = RecentEventsLimit
	}
	return s.repo.GetRecentEvents(ctx, userID, limit)
}

// GetEventsByType returns the user's latest events of one type.
func (s *Service) GetEventsByType(ctx context.Context, eventType entities.AuditEventType, userID uint, limit int) ([]entities.AuditEvent, error) {
	if s == nil {
		return []entities.AuditEvent{}, nil
	}
	if limit <= 0 {
		limit = RecentEventsLimit
	}
	return s.repo.GetEventsByType(ctx, eventType, userID, limit)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	if s == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func encodeMetadata(metadata map[string]any) string {
	data, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(data)
}
