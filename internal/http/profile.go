package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booktracker/internal/audit"
	"github.com/mrlokans/booktracker/internal/services"
)

type ProfileController struct {
	profiles ProfileStore
	auditor  *audit.Service
}

func NewProfileController(profiles ProfileStore, auditor *audit.Service) *ProfileController {
	return &ProfileController{
		profiles: profiles,
		auditor:  auditor,
	}
}

// GetProfile returns the current user's profile.
// GET /api/profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	user, err := pc.profiles.GetProfile(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the current user's profile.
// PUT /api/profile
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var patch services.ProfilePatch
	if !bindOptionalJSON(c, &patch) {
		return
	}

	userID := GetUserID(c)
	user, err := pc.profiles.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pc.auditor.LogProfileUpdated(userID, profileFields(patch), GetRequestID(c))
	c.JSON(http.StatusOK, user)
}

func profileFields(p services.ProfilePatch) []string {
	var fields []string
	if p.Username.Set {
		fields = append(fields, "username")
	}
	if p.Email.Set {
		fields = append(fields, "email")
	}
	if p.ProfilePictureURL.Set {
		fields = append(fields, "profile_picture_url")
	}
	if p.Location.Set {
		fields = append(fields, "location")
	}
	sort.Strings(fields)
	return fields
}
