package http

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mrlokans/booktracker/internal/entities"
	"github.com/mrlokans/booktracker/internal/services"
)

// Context keys set by the router middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// GetUserID returns the user the request acts on. Without an injected
// user it falls back to the default user.
func GetUserID(c *gin.Context) uint {
	if id := c.GetUint(ContextKeyUserID); id != 0 {
		return id
	}
	return entities.DefaultUserID
}

// GetRequestID returns the id assigned by RequestIDMiddleware, if any.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// --- Response Types ---

// ErrorResponse is the error body of every API failure. Error carries the
// underlying cause for conflicts and internal errors.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// respondServiceError maps a service error kind onto its HTTP status.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		log.Printf("Internal error (%s %s): %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error", Error: err.Error()})
		return
	}

	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: svcErr.Message})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: svcErr.Message})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Message: svcErr.Message, Error: svcErr.Detail()})
	default:
		log.Printf("Internal error (%s %s): %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: svcErr.Message, Error: svcErr.Detail()})
	}
}

// --- Request Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON decodes the request body into obj. An empty body leaves
// obj untouched and is not an error; malformed JSON responds with 400.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "Failed to read request body")
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := binding.JSON.BindBody(body, obj); err != nil {
		respondBadRequest(c, "Invalid JSON payload")
		return false
	}
	return true
}
