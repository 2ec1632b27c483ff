package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarDate returns the calendar day of t in loc as midnight UTC.
// Two instants on the same local day always yield the same value.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// CompactDate formats a date as YYYYMMDD
func CompactDate(date time.Time) string {
	return date.Format("20060102")
}

// DaysRemaining returns how many daily payments are still needed, rounded up
func DaysRemaining(remaining, daily decimal.Decimal) int64 {
	if !daily.IsPositive() || !remaining.IsPositive() {
		return 0
	}
	return remaining.Div(daily).Ceil().IntPart()
}

// DaysElapsed returns how many full daily payments were made
func DaysElapsed(paid, daily decimal.Decimal) int64 {
	if !daily.IsPositive() || !paid.IsPositive() {
		return 0
	}
	return paid.Div(daily).Floor().IntPart()
}

// ProgressPercentage returns paid/total as a percentage rounded to 2 decimal places
func ProgressPercentage(paid, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return paid.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}

