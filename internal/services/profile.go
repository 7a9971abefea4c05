package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/booktracker/internal/database/users"
	"github.com/mrlokans/booktracker/internal/entities"
)

// ProfilePatch is a partial update of the user profile.
type ProfilePatch struct {
	Username          Optional[string] `json:"username"`
	Email             Optional[string] `json:"email"`
	ProfilePictureURL Optional[string] `json:"profile_picture_url"`
	Location          Optional[string] `json:"location"`
}

// IsEmpty reports whether no known key was supplied.
func (p ProfilePatch) IsEmpty() bool {
	return !p.Username.Set && !p.Email.Set && !p.ProfilePictureURL.Set && !p.Location.Set
}

// Profiles reads and edits user profiles.
type Profiles struct {
	db *gorm.DB
}

func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

// GetProfile returns the user's profile.
func (p *Profiles) GetProfile(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := users.NewRepository(p.db).GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError("User profile not found")
	}
	if err != nil {
		return nil, persistenceError("Failed to load user profile", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the user's profile. A username or
// email already used by another user yields ErrConflict.
func (p *Profiles) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*entities.User, error) {
	var updated *entities.User
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		user, err := repo.GetUserByID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("User profile not found")
		}
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			return validationError("No input data provided")
		}

		if patch.Username.Set {
			if patch.Username.Value == nil || *patch.Username.Value == "" {
				return validationError("username cannot be empty")
			}
			user.Username = *patch.Username.Value
		}
		if patch.Email.Set {
			if patch.Email.Value == nil || validate.Var(*patch.Email.Value, "contains=@") != nil {
				return validationError("Invalid email format")
			}
			user.Email = *patch.Email.Value
		}
		if patch.ProfilePictureURL.Set {
			user.ProfilePictureURL = patch.ProfilePictureURL.Value
		}
		if patch.Location.Set {
			user.Location = patch.Location.Value
		}

		if err := repo.SaveUser(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		if users.IsUniqueViolation(err) {
			return nil, conflictError("Update failed due to unique constraint (e.g., username or email already exists).", err)
		}
		return nil, asServiceError(err, "Failed to update user profile")
	}
	return updated, nil
}
