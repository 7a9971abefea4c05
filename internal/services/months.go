package services

import "time"

// TrailingMonths is the length of every monthly statistics series.
const TrailingMonths = 12

// MonthLabelLayout renders a bucket label such as "Jan 2024".
const MonthLabelLayout = "Jan 2006"

// MonthlyValue is an aggregate for one calendar month.
type MonthlyValue struct {
	Year  int
	Month time.Month
	Value int64
}

// MonthBucket is one entry of a trailing monthly series.
type MonthBucket struct {
	Year  int
	Month time.Month
	Label string
	Value int64
}

// FillMonths lays rows out over the month of today and the eleven months
// before it, oldest first. Months without a row get 0, rows outside the
// window are ignored and duplicate rows for a month are summed.
func FillMonths(today time.Time, rows []MonthlyValue) []MonthBucket {
	type monthKey struct {
		year  int
		month time.Month
	}

	totals := make(map[monthKey]int64, len(rows))
	for _, row := range rows {
		totals[monthKey{row.Year, row.Month}] += row.Value
	}

	// Day 1 keeps AddDate from overflowing into the next month.
	first := time.Date(today.Year(), today.Month()-(TrailingMonths-1), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]MonthBucket, 0, TrailingMonths)
	for i := 0; i < TrailingMonths; i++ {
		month := first.AddDate(0, i, 0)
		buckets = append(buckets, MonthBucket{
			Year:  month.Year(),
			Month: month.Month(),
			Label: month.Format(MonthLabelLayout),
			Value: totals[monthKey{month.Year(), month.Month()}],
		})
	}
	return buckets
}
