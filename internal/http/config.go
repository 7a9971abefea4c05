package http

import (
	"github.com/mrlokans/booktracker/internal/audit"
	"github.com/mrlokans/booktracker/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library  Library
	Profiles ProfileStore
	Stats    StatsReader
	Database *database.Database
	Auditor  *audit.Service

	// UserID is injected into every request. Zero means the default user.
	UserID uint

	// StaticPath serves a built frontend under /static when set
	StaticPath string

	// Application info
	Version string
}
