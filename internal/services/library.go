package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrlokans/booktracker/internal/database/books"
	"github.com/mrlokans/booktracker/internal/entities"
)

var validate = validator.New()

// AddBookInput is the payload for tracking a book.
type AddBookInput struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	ISBN            *string `json:"isbn"`
	CoverImageURL   *string `json:"cover_image_url"`
	PublicationYear *int    `json:"publication_year"`
	PageCount       *int    `json:"page_count"`
	Description     *string `json:"description"`
	Genre           *string `json:"genre"`
	Status          *string `json:"status"`
}

// ReadingStatusPatch is a partial update of a reading status. Only keys
// present in the decoded JSON are applied.
type ReadingStatusPatch struct {
	Status      Optional[string] `json:"status"`
	CurrentPage Optional[int]    `json:"current_page"`
	Rating      Optional[int]    `json:"rating"`
	StartDate   Optional[string] `json:"start_date"`
	FinishDate  Optional[string] `json:"finish_date"`
	Notes       Optional[string] `json:"notes"`
}

// IsEmpty reports whether no known key was supplied.
func (p ReadingStatusPatch) IsEmpty() bool {
	return !p.Status.Set && !p.CurrentPage.Set && !p.Rating.Set &&
		!p.StartDate.Set && !p.FinishDate.Set && !p.Notes.Set
}

// TrackedBook is a book together with the user's reading status for it.
// Status is nil when the user does not track the book.
type TrackedBook struct {
	Book   entities.Book
	Status *entities.ReadingStatus
}

// Library tracks books on a user's shelf.
type Library struct {
	db *gorm.DB
}

func NewLibrary(db *gorm.DB) *Library {
	return &Library{db: db}
}

// AddOrTrackBook reuses the book with the same ISBN or creates a new one,
// then creates or updates the user's reading status for it. Both writes
// commit together or not at all.
func (l *Library) AddOrTrackBook(ctx context.Context, userID uint, input AddBookInput) (*TrackedBook, error) {
	if err := validate.Struct(input); err != nil {
		return nil, validationError("Missing required fields: title and author")
	}

	var result TrackedBook
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		isbn := normalizeISBN(input.ISBN)

		var book *entities.Book
		if isbn != nil {
			existing, err := repo.FindBookByISBN(ctx, *isbn)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			book = existing
		}

		if book == nil {
			book = &entities.Book{
				Title:           input.Title,
				Author:          input.Author,
				CoverImageURL:   input.CoverImageURL,
				PublicationYear: input.PublicationYear,
				ISBN:            isbn,
				PageCount:       input.PageCount,
				Description:     input.Description,
				Genre:           input.Genre,
			}
			if err := repo.CreateBook(ctx, book); err != nil {
				return err
			}
		}

		status, err := repo.GetReadingStatus(ctx, userID, book.ID)
		switch {
		case err == nil:
			if input.Status != nil && *input.Status != "" {
				status.Status = *input.Status
				if err := repo.SaveReadingStatus(ctx, status); err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = &entities.ReadingStatus{
				UserID: userID,
				BookID: book.ID,
				Status: entities.StatusWantToRead,
			}
			if input.Status != nil && *input.Status != "" {
				status.Status = *input.Status
			}
			if err := repo.CreateReadingStatus(ctx, status); err != nil {
				return err
			}
		default:
			return err
		}

		result = TrackedBook{Book: *book, Status: status}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "Failed to add book or reading status")
	}
	return &result, nil
}

// ListTrackedBooks returns the user's tracked books in storage order,
// optionally only those with the given status.
func (l *Library) ListTrackedBooks(ctx context.Context, userID uint, statusFilter string) ([]TrackedBook, error) {
	repo := books.NewRepository(l.db)

	statuses, err := repo.ListReadingStatuses(ctx, userID, statusFilter)
	if err != nil {
		return nil, persistenceError("Failed to list books", err)
	}

	ids := make([]uint, 0, len(statuses))
	for _, s := range statuses {
		ids = append(ids, s.BookID)
	}
	byID, err := repo.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, persistenceError("Failed to list books", err)
	}

	tracked := make([]TrackedBook, 0, len(statuses))
	for i := range statuses {
		book, ok := byID[statuses[i].BookID]
		if !ok {
			continue
		}
		tracked = append(tracked, TrackedBook{Book: book, Status: &statuses[i]})
	}
	return tracked, nil
}

// GetBook returns the book and, if the user tracks it, its reading status.
func (l *Library) GetBook(ctx context.Context, userID, bookID uint) (*TrackedBook, error) {
	repo := books.NewRepository(l.db)

	book, err := repo.GetBookByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError("Book not found")
	}
	if err != nil {
		return nil, persistenceError("Failed to load book", err)
	}

	status, err := repo.GetReadingStatus(ctx, userID, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &TrackedBook{Book: *book}, nil
	}
	if err != nil {
		return nil, persistenceError("Failed to load book", err)
	}
	return &TrackedBook{Book: *book, Status: status}, nil
}

// UpdateReadingStatus applies a partial update to the user's status for a book.
func (l *Library) UpdateReadingStatus(ctx context.Context, userID, bookID uint, patch ReadingStatusPatch) (*TrackedBook, error) {
	if patch.IsEmpty() {
		return nil, validationError("No input data provided")
	}
	if patch.Status.Set && (patch.Status.Value == nil || *patch.Status.Value == "") {
		return nil, validationError("status cannot be empty")
	}
	startDate, err := parsePatchDate(patch.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	finishDate, err := parsePatchDate(patch.FinishDate, "finish_date")
	if err != nil {
		return nil, err
	}

	var result TrackedBook
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)

		status, err := repo.GetReadingStatus(ctx, userID, bookID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Reading status not found for this book and user")
		}
		if err != nil {
			return err
		}

		if patch.Status.Set {
			status.Status = *patch.Status.Value
		}
		if patch.CurrentPage.Set {
			status.CurrentPage = patch.CurrentPage.Value
		}
		if patch.Rating.Set {
			status.Rating = patch.Rating.Value
		}
		if patch.StartDate.Set {
			status.StartDate = startDate
		}
		if patch.FinishDate.Set {
			status.FinishDate = finishDate
		}
		if patch.Notes.Set {
			status.Notes = patch.Notes.Value
		}

		if err := repo.SaveReadingStatus(ctx, status); err != nil {
			return err
		}

		book, err := repo.GetBookByID(ctx, bookID)
		if err != nil {
			return err
		}

		result = TrackedBook{Book: *book, Status: status}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, "Failed to update reading status")
	}
	return &result, nil
}

// DeleteTrackedBook removes the user's reading status for a book. The book
// itself and other users' statuses are kept.
func (l *Library) DeleteTrackedBook(ctx context.Context, userID, bookID uint) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)

		status, err := repo.GetReadingStatus(ctx, userID, bookID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Reading status not found for this book and user")
		}
		if err != nil {
			return err
		}
		return repo.DeleteReadingStatus(ctx, status.ID)
	})
	if err != nil {
		return asServiceError(err, "Failed to delete reading status")
	}
	return nil
}

// normalizeISBN maps a blank ISBN to nil so books without one never collide
// on the unique index.
func normalizeISBN(isbn *string) *string {
	if isbn == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*isbn)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parsePatchDate(field Optional[string], name string) (*datatypes.Date, error) {
	if !field.Set || field.Value == nil || *field.Value == "" {
		return nil, nil
	}
	d, err := entities.ParseDate(*field.Value)
	if err != nil {
		return nil, validationError("Invalid " + name + ", expected YYYY-MM-DD")
	}
	return &d, nil
}
