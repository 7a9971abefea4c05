package http

import (
	"context"

	"github.com/mrlokans/booktracker/internal/entities"
	"github.com/mrlokans/booktracker/internal/services"
)

// Each controller depends on the narrowest interface it needs. The services
// package provides the production implementations.

// Library tracks books on a user's shelf.
type Library interface {
	AddOrTrackBook(ctx context.Context, userID uint, input services.AddBookInput) (*services.TrackedBook, error)
	ListTrackedBooks(ctx context.Context, userID uint, statusFilter string) ([]services.TrackedBook, error)
	GetBook(ctx context.Context, userID, bookID uint) (*services.TrackedBook, error)
	UpdateReadingStatus(ctx context.Context, userID, bookID uint, patch services.ReadingStatusPatch) (*services.TrackedBook, error)
	DeleteTrackedBook(ctx context.Context, userID, bookID uint) error
}

// ProfileStore reads and edits the user profile.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uint) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID uint, patch services.ProfilePatch) (*entities.User, error)
}

// StatsReader computes reading statistics.
type StatsReader interface {
	Summary(ctx context.Context, userID uint) (*services.Summary, error)
	BooksPerMonth(ctx context.Context, userID uint) ([]services.BooksInMonth, error)
	PagesReadPerMonth(ctx context.Context, userID uint) ([]services.PagesInMonth, error)
}

// Pinger checks storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ Library      = (*services.Library)(nil)
	_ ProfileStore = (*services.Profiles)(nil)
	_ StatsReader  = (*services.Stats)(nil)
)
