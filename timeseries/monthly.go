package timeseries

import "time"

// The orchestrator works on month-start timestamps. All month arithmetic
// ignores the day component beyond what AddDate provides, so callers
// should normalize their dates to the first of the month.

// AddMonths returns t shifted by n calendar months.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// MonthsBetween returns the number of calendar months from a to b,
// computed from the year and month components only. The result is
// negative when b precedes a.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// MonthRange returns the inclusive sequence of monthly timestamps from
// start to end. It returns nil when end precedes start.
func MonthRange(start, end time.Time) []time.Time {
	n := MonthsBetween(start, end)
	if n < 0 {
		return nil
	}
	out := make([]time.Time, n+1)
	for i := range out {
		out[i] = AddMonths(start, i)
	}
	return out
}

// Reindex returns a copy of the series carrying a fresh regular monthly
// index spanning [start, start + len - 1 months]. Used to stitch model
// outputs, which may carry heterogeneous indices, onto the requested
// prediction range.
func (s *Series) Reindex(start time.Time) *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = AddMonths(start, i)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}
