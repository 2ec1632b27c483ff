package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalendarDate(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name     string
		instant  time.Time
		loc      *time.Location
		expected time.Time
	}{
		{
			name:     "morning in UTC",
			instant:  time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC),
			loc:      time.UTC,
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "late evening local is still the same local day",
			instant:  time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC), // 23:00 on the 10th in BRT
			loc:      saoPaulo,
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "local midnight starts a new day",
			instant:  time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC),
			loc:      saoPaulo,
			expected: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalendarDate(tt.instant, tt.loc))
		})
	}
}

func TestCalendarDate_IndependentOfTimeOfDay(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	first := CalendarDate(day, time.UTC)
	for h := 0; h < 24; h++ {
		assert.Equal(t, first, CalendarDate(day.Add(time.Duration(h)*time.Hour+59*time.Minute), time.UTC))
	}
}

func TestCompactDate(t *testing.T) {
	assert.Equal(t, "20240105", CompactDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestLoanProgress(t *testing.T) {
	tests := []struct {
		name              string
		total             decimal.Decimal
		paid              decimal.Decimal
		remaining         decimal.Decimal
		daily             decimal.Decimal
		expectedRemaining int64
		expectedElapsed   int64
		expectedProgress  decimal.Decimal
	}{
		{
			name:              "fresh loan",
			total:             decimal.NewFromInt(100),
			paid:              decimal.Zero,
			remaining:         decimal.NewFromInt(100),
			daily:             decimal.NewFromInt(10),
			expectedRemaining: 10,
			expectedElapsed:   0,
			expectedProgress:  decimal.Zero,
		},
		{
			name:              "partial day rounds remaining up and elapsed down",
			total:             decimal.NewFromInt(100),
			paid:              decimal.NewFromInt(25),
			remaining:         decimal.NewFromInt(75),
			daily:             decimal.NewFromInt(10),
			expectedRemaining: 8,
			expectedElapsed:   2,
			expectedProgress:  decimal.NewFromInt(25),
		},
		{
			name:              "paid off",
			total:             decimal.NewFromInt(30),
			paid:              decimal.NewFromInt(30),
			remaining:         decimal.Zero,
			daily:             decimal.NewFromInt(7),
			expectedRemaining: 0,
			expectedElapsed:   4,
			expectedProgress:  decimal.NewFromInt(100),
		},
		{
			name:              "zero daily amount",
			total:             decimal.NewFromInt(30),
			paid:              decimal.NewFromInt(10),
			remaining:         decimal.NewFromInt(20),
			daily:             decimal.Zero,
			expectedRemaining: 0,
			expectedElapsed:   0,
			expectedProgress:  decimal.RequireFromString("33.33"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedRemaining, DaysRemaining(tt.remaining, tt.daily))
			assert.Equal(t, tt.expectedElapsed, DaysElapsed(tt.paid, tt.daily))
			progress := ProgressPercentage(tt.paid, tt.total)
			assert.True(t, progress.Equal(tt.expectedProgress), "Expected %v, but got %v", tt.expectedProgress, progress)
		})
	}
}
