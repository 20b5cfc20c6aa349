package earnings

import (
	"testing"
	"time"

	"fixly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestBuildSummaryDailyBuckets(t *testing.T) {
	records := []models.EarningsRecord{
		{Date: day("2026-08-20"), TotalCommissionEarned: 100, TotalBookings: 2},
		{Date: day("2026-08-22"), TotalCommissionEarned: 50, TotalBookings: 1},
		{Date: day("2026-08-25"), TotalCommissionEarned: 75, TotalBookings: 3},
	}

	summary := BuildSummary(PeriodWeek, day("2026-08-19"), day("2026-08-26"), records)
	require.Len(t, summary.Buckets, 3)

	assert.Equal(t, "2026-08-20", summary.Buckets[0].Key)
	assert.Equal(t, "2026-08-22", summary.Buckets[1].Key)
	assert.Equal(t, "2026-08-25", summary.Buckets[2].Key)
	assert.Equal(t, 100.0, summary.Buckets[0].Commission)
	assert.Equal(t, 225.0, summary.TotalCommission)
	assert.Equal(t, 6, summary.TotalBookings)
}

func TestBuildSummaryMonthlyBuckets(t *testing.T) {
	records := []models.EarningsRecord{
		{Date: day("2026-01-03"), TotalCommissionEarned: 10, TotalBookings: 1},
		{Date: day("2026-01-28"), TotalCommissionEarned: 20, TotalBookings: 2},
		{Date: day("2026-03-15"), TotalCommissionEarned: 30, TotalBookings: 1},
	}

	summary := BuildSummary(PeriodYear, day("2025-08-01"), day("2026-08-01"), records)
	require.Len(t, summary.Buckets, 2)

	// January records merge into one monthly bucket.
	assert.Equal(t, "2026-01", summary.Buckets[0].Key)
	assert.Equal(t, 30.0, summary.Buckets[0].Commission)
	assert.Equal(t, 3, summary.Buckets[0].Bookings)
	assert.Equal(t, "2026-03", summary.Buckets[1].Key)
	assert.Equal(t, 60.0, summary.TotalCommission)
}

func TestBuildSummaryEmptyWindow(t *testing.T) {
	summary := BuildSummary(PeriodMonth, day("2026-07-01"), day("2026-08-01"), nil)
	assert.Empty(t, summary.Buckets)
	assert.Zero(t, summary.TotalCommission)
	assert.Zero(t, summary.TotalBookings)
}
