package services

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/booktracker/internal/database/stats"
)

// Summary holds the all-time totals over the user's read books.
type Summary struct {
	TotalBooksRead int64   `json:"total_books_read"`
	TotalPagesRead int64   `json:"total_pages_read"`
	AverageRating  float64 `json:"average_rating"`
}

// BooksInMonth is one entry of the books-finished series.
type BooksInMonth struct {
	MonthYear string `json:"month_year"`
	Count     int64  `json:"count"`
}

// PagesInMonth is one entry of the pages-read series.
type PagesInMonth struct {
	MonthYear  string `json:"month_year"`
	TotalPages int64  `json:"total_pages"`
}

// Stats computes reading statistics.
type Stats struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStats(db *gorm.DB) *Stats {
	return &Stats{db: db, now: time.Now}
}

// WithClock replaces the clock used to pick the current month.
func (s *Stats) WithClock(now func() time.Time) *Stats {
	s.now = now
	return s
}

// Summary returns the count, page total and average rating of read books.
func (s *Stats) Summary(ctx context.Context, userID uint) (*Summary, error) {
	repo := stats.NewRepository(s.db)

	count, err := repo.CountRead(ctx, userID)
	if err != nil {
		return nil, persistenceError("Failed to compute summary", err)
	}
	pages, err := repo.SumPagesRead(ctx, userID)
	if err != nil {
		return nil, persistenceError("Failed to compute summary", err)
	}
	avg, err := repo.AverageRating(ctx, userID)
	if err != nil {
		return nil, persistenceError("Failed to compute summary", err)
	}

	summary := &Summary{TotalBooksRead: count, TotalPagesRead: pages}
	if avg.Valid {
		summary.AverageRating = math.Round(avg.Float64*100) / 100
	}
	return summary, nil
}

// BooksPerMonth returns how many books were finished in each of the last 12 months.
func (s *Stats) BooksPerMonth(ctx context.Context, userID uint) ([]BooksInMonth, error) {
	reads, err := stats.NewRepository(s.db).FinishedReads(ctx, userID)
	if err != nil {
		return nil, persistenceError("Failed to compute books per month", err)
	}

	rows := groupByMonth(reads, func(stats.FinishedRead) (int64, bool) {
		return 1, true
	})

	buckets := FillMonths(s.now().UTC(), rows)
	series := make([]BooksInMonth, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, BooksInMonth{MonthYear: b.Label, Count: b.Value})
	}
	return series, nil
}

// PagesReadPerMonth returns the pages of books finished in each of the last
// 12 months. Books without a page count are skipped.
func (s *Stats) PagesReadPerMonth(ctx context.Context, userID uint) ([]PagesInMonth, error) {
	reads, err := stats.NewRepository(s.db).FinishedReads(ctx, userID)
	if err != nil {
		return nil, persistenceError("Failed to compute pages read per month", err)
	}

	rows := groupByMonth(reads, func(r stats.FinishedRead) (int64, bool) {
		if r.PageCount == nil {
			return 0, false
		}
		return int64(*r.PageCount), true
	})

	buckets := FillMonths(s.now().UTC(), rows)
	series := make([]PagesInMonth, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, PagesInMonth{MonthYear: b.Label, TotalPages: b.Value})
	}
	return series, nil
}

// groupByMonth sums value over reads sharing the year and month of their
// finish date. Reads for which value reports false are left out.
func groupByMonth(reads []stats.FinishedRead, value func(stats.FinishedRead) (int64, bool)) []MonthlyValue {
	var rows []MonthlyValue
	index := make(map[[2]int]int)

	for _, read := range reads {
		v, ok := value(read)
		if !ok {
			continue
		}
		finished := time.Time(read.FinishDate)
		key := [2]int{finished.Year(), int(finished.Month())}
		if i, seen := index[key]; seen {
			rows[i].Value += v
			continue
		}
		index[key] = len(rows)
		rows = append(rows, MonthlyValue{Year: finished.Year(), Month: finished.Month(), Value: v})
	}
	return rows
}
