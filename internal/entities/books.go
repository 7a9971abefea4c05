package entities

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reading status values. The column is an open string; these are the values
// the frontend knows how to render.
const (
	StatusWantToRead       = "want_to_read"
	StatusCurrentlyReading = "currently_reading"
	StatusRead             = "read"
)

// DateLayout is the wire format for reading dates.
const DateLayout = "2006-01-02"

type Book struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Title           string  `gorm:"size:255;not null" json:"title"`
	Author          string  `gorm:"size:255;not null" json:"author"`
	CoverImageURL   *string `gorm:"size:255" json:"cover_image_url"`
	PublicationYear *int    `json:"publication_year"`
	ISBN            *string `gorm:"uniqueIndex;size:20" json:"isbn"`
	PageCount       *int    `json:"page_count"`
	Description     *string `gorm:"type:text" json:"description"`
	Genre           *string `gorm:"size:100" json:"genre"`
}

func (Book) TableName() string {
	return "books"
}

// ReadingStatus links a user to a book and carries all per-user state for it.
// At most one row exists per (user_id, book_id).
type ReadingStatus struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;uniqueIndex:uq_user_book_status"`
	BookID      uint            `gorm:"not null;uniqueIndex:uq_user_book_status;index"`
	Status      string          `gorm:"size:50;not null;index"`
	CurrentPage *int            `gorm:"default:0"`
	Rating      *int
	StartDate   *datatypes.Date
	FinishDate  *datatypes.Date
	AddedDate   datatypes.Date  `gorm:"not null"`
	Notes       *string         `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ReadingStatus) TableName() string {
	return "reading_statuses"
}

// BeforeCreate fills in the added date and the starting page.
func (rs *ReadingStatus) BeforeCreate(tx *gorm.DB) error {
	if time.Time(rs.AddedDate).IsZero() {
		rs.AddedDate = Today()
	}
	if rs.CurrentPage == nil {
		zero := 0
		rs.CurrentPage = &zero
	}
	return nil
}

// Today returns the current UTC calendar date.
func Today() datatypes.Date {
	now := time.Now().UTC()
	return datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string into a date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders a nullable date as YYYY-MM-DD, or nil.
func FormatDate(d *datatypes.Date) *string {
	if d == nil || time.Time(*d).IsZero() {
		return nil
	}
	s := time.Time(*d).Format(DateLayout)
	return &s
}
