package timeseries

import (
	"math"
	"testing"
	"time"
)

func TestNewMonthly(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := NewMonthly(start, []float64{1, 2, 3})

	if s.Len() != 3 {
		t.Fatalf("Expected length 3, got %d", s.Len())
	}
	if !s.Timestamps[0].Equal(start) {
		t.Errorf("Expected first timestamp %v, got %v", start, s.Timestamps[0])
	}
	want := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !s.Timestamps[2].Equal(want) {
		t.Errorf("Expected last timestamp %v, got %v", want, s.Timestamps[2])
	}
}

func TestNewWithTimestampsMismatch(t *testing.T) {
	_, err := NewWithTimestamps([]time.Time{time.Now()}, []float64{1, 2})
	if err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}

func TestFirstLastDate(t *testing.T) {
	start := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	s := NewMonthly(start, []float64{1, 2, 3, 4})

	if !s.FirstDate().Equal(start) {
		t.Errorf("FirstDate = %v, want %v", s.FirstDate(), start)
	}
	want := time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC)
	if !s.LastDate().Equal(want) {
		t.Errorf("LastDate = %v, want %v", s.LastDate(), want)
	}
}

func TestIndexOf(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := NewMonthly(start, []float64{1, 2, 3, 4, 5})

	tests := []struct {
		date time.Time
		want int
	}{
		{start, 0},
		{time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC), 4},
		{time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC), -1},
		{time.Date(2019, time.December, 1, 0, 0, 0, 0, time.UTC), -1},
		{time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC), -1},
	}

	for _, tt := range tests {
		if got := s.IndexOf(tt.date); got != tt.want {
			t.Errorf("IndexOf(%v) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestIsChronological(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := NewMonthly(start, []float64{1, 2, 3})
	if !s.IsChronological() {
		t.Error("Monthly series should be chronological")
	}

	ts := []time.Time{start, start, AddMonths(start, 1)}
	dup, _ := NewWithTimestamps(ts, []float64{1, 2, 3})
	if dup.IsChronological() {
		t.Error("Series with duplicate timestamps should not be chronological")
	}

	rev := []time.Time{AddMonths(start, 1), start}
	bad, _ := NewWithTimestamps(rev, []float64{1, 2})
	if bad.IsChronological() {
		t.Error("Reversed series should not be chronological")
	}
}

func TestStatistics(t *testing.T) {
	s := New([]float64{2, 4, 6, 8})

	if s.Mean() != 5 {
		t.Errorf("Mean = %f, want 5", s.Mean())
	}
	if s.Min() != 2 || s.Max() != 8 {
		t.Errorf("Min/Max = %f/%f, want 2/8", s.Min(), s.Max())
	}
	if math.Abs(s.Variance()-20.0/3.0) > 1e-9 {
		t.Errorf("Variance = %f, want %f", s.Variance(), 20.0/3.0)
	}
}

func TestDiff(t *testing.T) {
	s := New([]float64{1, 3, 6, 10})
	d := s.Diff()

	want := []float64{2, 3, 4}
	if d.Len() != len(want) {
		t.Fatalf("Diff length = %d, want %d", d.Len(), len(want))
	}
	for i, v := range want {
		if d.Values[i] != v {
			t.Errorf("Diff[%d] = %f, want %f", i, d.Values[i], v)
		}
	}
	// Diffed series keeps the tail of the index
	if !d.Timestamps[0].Equal(s.Timestamps[1]) {
		t.Errorf("Diff index should start at second original timestamp")
	}
}

func TestSeasonalDiff(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5, 6})
	d := s.SeasonalDiff(3)

	want := []float64{3, 3, 3}
	if d.Len() != len(want) {
		t.Fatalf("SeasonalDiff length = %d, want %d", d.Len(), len(want))
	}
	for i, v := range want {
		if d.Values[i] != v {
			t.Errorf("SeasonalDiff[%d] = %f, want %f", i, d.Values[i], v)
		}
	}
}

func TestSliceHeadTail(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})

	head := s.Head(2)
	if head.Len() != 2 || head.Values[1] != 2 {
		t.Errorf("Head(2) = %v", head.Values)
	}

	tail := s.Tail(2)
	if tail.Len() != 2 || tail.Values[0] != 4 {
		t.Errorf("Tail(2) = %v", tail.Values)
	}
	if !tail.Timestamps[0].Equal(s.Timestamps[3]) {
		t.Error("Tail should carry the original timestamps")
	}

	empty := s.Slice(4, 2)
	if empty.Len() != 0 {
		t.Errorf("Inverted slice should be empty, got %d", empty.Len())
	}
}

func TestConcat(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	a := NewMonthly(start, []float64{1, 2})
	b := NewMonthly(AddMonths(start, 2), []float64{3, 4})

	c := a.Concat(b)
	if c.Len() != 4 {
		t.Fatalf("Concat length = %d, want 4", c.Len())
	}
	if c.Values[2] != 3 {
		t.Errorf("Concat values = %v", c.Values)
	}
	if !c.IsChronological() {
		t.Error("Concat of contiguous series should be chronological")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := New([]float64{1, 2, 3})
	c := s.Copy()
	c.Values[0] = 99

	if s.Values[0] != 1 {
		t.Error("Copy should not share backing arrays")
	}
}
