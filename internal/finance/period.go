package finance

import "time"

// Period names a time window relative to a reference instant.
type Period string

const (
	// PeriodAll selects every record.
	PeriodAll Period = "all"
	// PeriodMonth selects records in the same calendar month as the reference.
	PeriodMonth Period = "month"
	// PeriodQuarter selects records in the same calendar quarter as the reference.
	PeriodQuarter Period = "quarter"
	// PeriodYear selects records in the same calendar year as the reference.
	PeriodYear Period = "year"
)

// Valid reports whether p is a recognised period name.
func (p Period) Valid() bool {
	switch p {
	case PeriodAll, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// DateRange is an explicit window for report exports. A nil bound is open;
// both nil means no filtering. Bounds are inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func quarterOf(t time.Time) int {
	return (int(t.Month()) - 1) / 3
}

// FilterByPeriod returns the records whose date falls inside the named
// window around now. The reference instant is always passed in, never read
// from the system clock, so results are reproducible. Each record is judged
// on its own calendar date with no timezone normalisation.
func FilterByPeriod[T any](records []T, period Period, dateOf func(T) time.Time, now time.Time) []T {
	if period == PeriodAll || period == "" {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		d := dateOf(rec)
		switch period {
		case PeriodMonth:
			if d.Year() == now.Year() && d.Month() == now.Month() {
				out = append(out, rec)
			}
		case PeriodQuarter:
			if d.Year() == now.Year() && quarterOf(d) == quarterOf(now) {
				out = append(out, rec)
			}
		case PeriodYear:
			if d.Year() == now.Year() {
				out = append(out, rec)
			}
		}
	}
	return out
}

// FilterByRange keeps records with start <= date <= end for each bound that
// is present.
func FilterByRange[T any](records []T, r DateRange, dateOf func(T) time.Time) []T {
	if r.Start == nil && r.End == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		d := dateOf(rec)
		if r.Start != nil && d.Before(*r.Start) {
			continue
		}
		if r.End != nil && d.After(*r.End) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SaleDate and ExpenseDate are the dateOf accessors used across the engine.
func SaleDate(s Sale) time.Time       { return s.Date }
func ExpenseDate(e Expense) time.Time { return e.Date }
