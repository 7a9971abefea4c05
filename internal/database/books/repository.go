// Package books provides database operations for books and the reading
// statuses that link them to users.
//
// Book and ReadingStatus carry plain foreign-key fields; the repository joins
// them at query time instead of relying on ORM associations.
//
// # Usage
//
//	repo := books.NewRepository(tx)
//	book, err := repo.FindBookByISBN(ctx, "9780441013593")
package books

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/booktracker/internal/entities"
)

// Repository handles book and reading status database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository. Pass a transaction handle to
// scope every call to that transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindBookByISBN retrieves the book registered under isbn.
func (r *Repository) FindBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts a book and assigns its ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetReadingStatus retrieves the status row for a user and book.
func (r *Repository) GetReadingStatus(ctx context.Context, userID, bookID uint) (*entities.ReadingStatus, error) {
	var status entities.ReadingStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// CreateReadingStatus inserts a new status row.
func (r *Repository) CreateReadingStatus(ctx context.Context, status *entities.ReadingStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

// SaveReadingStatus writes every column of an existing status row.
func (r *Repository) SaveReadingStatus(ctx context.Context, status *entities.ReadingStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

// DeleteReadingStatus removes a status row. The book is left in place.
func (r *Repository) DeleteReadingStatus(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.ReadingStatus{}, id).Error
}

// ListReadingStatuses returns the user's status rows in storage order,
// optionally restricted to one status value.
func (r *Repository) ListReadingStatuses(ctx context.Context, userID uint, status string) ([]entities.ReadingStatus, error) {
	var statuses []entities.ReadingStatus
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("id ASC").Find(&statuses).Error
	return statuses, err
}

// GetBooksByIDs returns the books with the given IDs keyed by ID.
func (r *Repository) GetBooksByIDs(ctx context.Context, ids []uint) (map[uint]entities.Book, error) {
	result := make(map[uint]entities.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var found []entities.Book
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	for _, book := range found {
		result[book.ID] = book
	}
	return result, nil
}

// CountBooks returns the total number of book rows.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// CountReadingStatuses returns how many status rows exist for a user and book.
func (r *Repository) CountReadingStatuses(ctx context.Context, userID, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.ReadingStatus{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count, err
}
