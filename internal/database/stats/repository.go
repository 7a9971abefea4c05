// Package stats provides the aggregate queries behind the reading statistics.
//
// Every query is scoped to one user and to reading statuses marked "read".
package stats

import (
	"context"
	"database/sql"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrlokans/booktracker/internal/entities"
)

// FinishedRead is one finished book: when it was finished and how long it was.
type FinishedRead struct {
	FinishDate datatypes.Date
	PageCount  *int
}

// Repository runs statistics queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountRead returns the number of books the user has marked as read.
func (r *Repository) CountRead(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.ReadingStatus{}).
		Where("user_id = ? AND status = ?", userID, entities.StatusRead).
		Count(&count).Error
	return count, err
}

// SumPagesRead returns the page total of the user's read books.
// Books without a page count contribute nothing.
func (r *Repository) SumPagesRead(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Table("reading_statuses").
		Select("COALESCE(SUM(books.page_count), 0)").
		Joins("JOIN books ON books.id = reading_statuses.book_id").
		Where("reading_statuses.user_id = ? AND reading_statuses.status = ?", userID, entities.StatusRead).
		Scan(&total).Error
	return total, err
}

// AverageRating returns the mean of the non-null ratings on read books.
// The result is invalid when nothing has been rated.
func (r *Repository) AverageRating(ctx context.Context, userID uint) (sql.NullFloat64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&entities.ReadingStatus{}).
		Select("AVG(rating)").
		Where("user_id = ? AND status = ? AND rating IS NOT NULL", userID, entities.StatusRead).
		Scan(&avg).Error
	return avg, err
}

// FinishedReads returns every read book of the user that has a finish date.
func (r *Repository) FinishedReads(ctx context.Context, userID uint) ([]FinishedRead, error) {
	var rows []FinishedRead
	err := r.db.WithContext(ctx).Table("reading_statuses").
		Select("reading_statuses.finish_date AS finish_date, books.page_count AS page_count").
		Joins("JOIN books ON books.id = reading_statuses.book_id").
		Where("reading_statuses.user_id = ? AND reading_statuses.status = ? AND reading_statuses.finish_date IS NOT NULL",
			userID, entities.StatusRead).
		Order("reading_statuses.finish_date ASC").
		Scan(&rows).Error
	return rows, err
}
