package http

import (
	"github.com/mrlokans/booktracker/internal/entities"
	"github.com/mrlokans/booktracker/internal/services"
)

// ReadingStatusResponse is the wire form of a reading status. Dates are
// ISO YYYY-MM-DD strings or null.
type ReadingStatusResponse struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	Status      string  `json:"status"`
	CurrentPage *int    `json:"current_page"`
	Rating      *int    `json:"rating"`
	StartDate   *string `json:"start_date"`
	FinishDate  *string `json:"finish_date"`
	AddedDate   *string `json:"added_date"`
	Notes       *string `json:"notes"`
}

// BookResponse is a book with the user's reading status, null when untracked.
type BookResponse struct {
	entities.Book
	ReadingStatus *ReadingStatusResponse `json:"reading_status"`
}

func newBookResponse(tracked services.TrackedBook) BookResponse {
	resp := BookResponse{Book: tracked.Book}
	if s := tracked.Status; s != nil {
		resp.ReadingStatus = &ReadingStatusResponse{
			ID:          s.ID,
			UserID:      s.UserID,
			Status:      s.Status,
			CurrentPage: s.CurrentPage,
			Rating:      s.Rating,
			StartDate:   entities.FormatDate(s.StartDate),
			FinishDate:  entities.FormatDate(s.FinishDate),
			AddedDate:   entities.FormatDate(&s.AddedDate),
			Notes:       s.Notes,
		}
	}
	return resp
}

func newBookListResponse(tracked []services.TrackedBook) []BookResponse {
	books := make([]BookResponse, 0, len(tracked))
	for _, t := range tracked {
		books = append(books, newBookResponse(t))
	}
	return books
}
