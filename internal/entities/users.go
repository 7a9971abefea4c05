package entities

// DefaultUserID is the single user every request is scoped to until
// authentication exists.
const DefaultUserID = uint(1)

type User struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Username          string  `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email             string  `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash      string  `gorm:"size:128;not null" json:"-"`
	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	Location          *string `gorm:"size:100" json:"location"`
}

func (User) TableName() string {
	return "users"
}
