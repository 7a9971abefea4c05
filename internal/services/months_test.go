package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillMonths(t *testing.T) {
	t.Run("window ends at the current month", func(t *testing.T) {
		today := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)

		buckets := FillMonths(today, nil)
		require.Len(t, buckets, TrailingMonths)
		assert.Equal(t, "Apr 2023", buckets[0].Label)
		assert.Equal(t, "Mar 2024", buckets[11].Label)

		for i, b := range buckets {
			assert.Zero(t, b.Value, "bucket %d", i)
			if i > 0 {
				prev := time.Date(buckets[i-1].Year, buckets[i-1].Month, 1, 0, 0, 0, 0, time.UTC)
				cur := time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC)
				assert.Equal(t, prev.AddDate(0, 1, 0), cur)
			}
		}
	})

	t.Run("year rollover", func(t *testing.T) {
		today := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

		buckets := FillMonths(today, []MonthlyValue{
			{Year: 2023, Month: time.November, Value: 3},
		})
		assert.Equal(t, "Feb 2023", buckets[0].Label)
		assert.Equal(t, "Nov 2023", buckets[9].Label)
		assert.Equal(t, int64(3), buckets[9].Value)
		assert.Equal(t, "Jan 2024", buckets[11].Label)
	})

	t.Run("rows are placed and summed", func(t *testing.T) {
		today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

		buckets := FillMonths(today, []MonthlyValue{
			{Year: 2024, Month: time.January, Value: 1},
			{Year: 2024, Month: time.January, Value: 2},
			{Year: 2024, Month: time.June, Value: 412},
			{Year: 2021, Month: time.January, Value: 99},
		})

		var total int64
		for _, b := range buckets {
			total += b.Value
		}
		assert.Equal(t, int64(415), total)
		assert.Equal(t, "Jan 2024", buckets[6].Label)
		assert.Equal(t, int64(3), buckets[6].Value)
		assert.Equal(t, int64(412), buckets[11].Value)
	})
}
