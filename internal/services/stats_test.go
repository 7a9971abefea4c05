package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStats_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("no reads", func(t *testing.T) {
		summary, err := NewStats(setupTestDB(t)).Summary(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, &Summary{}, summary)
	})

	t.Run("totals and rounded average", func(t *testing.T) {
		db := setupTestDB(t)
		lib := NewLibrary(db)

		add := func(title string, pages *int, rating *int, status string) {
			tracked, err := lib.AddOrTrackBook(ctx, userID, AddBookInput{Title: title, Author: "A", PageCount: pages, Status: &status})
			require.NoError(t, err)
			if rating != nil {
				_, err = lib.UpdateReadingStatus(ctx, userID, tracked.Book.ID, ReadingStatusPatch{Rating: Some(*rating)})
				require.NoError(t, err)
			}
		}
		add("one", intPtr(100), intPtr(4), "read")
		add("two", nil, intPtr(4), "read")
		add("three", intPtr(250), intPtr(5), "read")
		add("four", intPtr(999), intPtr(1), "currently_reading")

		summary, err := NewStats(db).Summary(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), summary.TotalBooksRead)
		assert.Equal(t, int64(350), summary.TotalPagesRead)
		assert.Equal(t, 4.33, summary.AverageRating)
	})
}

func TestStats_MonthlySeries(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	lib := NewLibrary(db)

	finish := func(title string, pages *int, date string) {
		tracked, err := lib.AddOrTrackBook(ctx, userID, AddBookInput{Title: title, Author: "A", PageCount: pages})
		require.NoError(t, err)
		_, err = lib.UpdateReadingStatus(ctx, userID, tracked.Book.ID, ReadingStatusPatch{
			Status:     Some("read"),
			FinishDate: Some(date),
		})
		require.NoError(t, err)
	}
	finish("Dune", intPtr(412), "2024-01-15")
	finish("Emma", nil, "2024-01-20")
	finish("Old", intPtr(100), "2020-05-01")

	tracked, err := lib.AddOrTrackBook(ctx, userID, AddBookInput{Title: "Unfinished", Author: "A", PageCount: intPtr(50), Status: strPtr("read")})
	require.NoError(t, err)
	require.Nil(t, tracked.Status.FinishDate)

	svc := NewStats(db).WithClock(fixedClock(time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)))

	books, err := svc.BooksPerMonth(ctx, userID)
	require.NoError(t, err)
	require.Len(t, books, 12)
	assert.Equal(t, "Apr 2023", books[0].MonthYear)
	assert.Equal(t, BooksInMonth{MonthYear: "Jan 2024", Count: 2}, books[9])
	assert.Equal(t, BooksInMonth{MonthYear: "Mar 2024", Count: 0}, books[11])

	pages, err := svc.PagesReadPerMonth(ctx, userID)
	require.NoError(t, err)
	require.Len(t, pages, 12)
	assert.Equal(t, PagesInMonth{MonthYear: "Jan 2024", TotalPages: 412}, pages[9])

	var total int64
	for _, p := range pages {
		total += p.TotalPages
	}
	assert.Equal(t, int64(412), total)
}
