package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booktracker/internal/audit"
	"github.com/mrlokans/booktracker/internal/entities"
)

type AuditController struct {
	auditService *audit.Service
}

func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// GetAuditEvents returns the latest audit events as JSON, optionally of one type.
// GET /api/audit?type=book_tracked&limit=20
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	userID := GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.RecentEventsLimit)))
	if limit < 1 || limit > 100 {
		limit = audit.RecentEventsLimit
	}

	var events []entities.AuditEvent
	var err error
	if eventType := c.Query("type"); eventType != "" {
		events, err = ac.auditService.GetEventsByType(c.Request.Context(), entities.AuditEventType(eventType), userID, limit)
	} else {
		events, err = ac.auditService.GetRecentEvents(c.Request.Context(), userID, limit)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
