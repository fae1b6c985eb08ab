package timeseries

import "testing"

func TestExogenousSetAdd(t *testing.T) {
	ex := NewExogenousSet().
		Add("temp", []float64{10, 12, 14}).
		Add("promo", []float64{0, 1, 0})

	if ex.NumColumns() != 2 {
		t.Fatalf("Expected 2 columns, got %d", ex.NumColumns())
	}
	if ex.Len() != 3 {
		t.Errorf("Expected length 3, got %d", ex.Len())
	}
	if ex.Names[0] != "temp" || ex.Names[1] != "promo" {
		t.Errorf("Column order not preserved: %v", ex.Names)
	}
}

func TestExogenousSetValidate(t *testing.T) {
	ex := NewExogenousSet().Add("x", []float64{1, 2, 3})

	if err := ex.Validate(3); err != nil {
		t.Errorf("Validate(3) should pass: %v", err)
	}
	if err := ex.Validate(4); err == nil {
		t.Error("Validate(4) should fail for length-3 column")
	}

	ragged := NewExogenousSet().
		Add("a", []float64{1, 2}).
		Add("b", []float64{1, 2, 3})
	if err := ragged.Validate(2); err == nil {
		t.Error("Ragged columns should fail validation")
	}
}

func TestExogenousSetRow(t *testing.T) {
	ex := NewExogenousSet().
		Add("a", []float64{1, 2}).
		Add("b", []float64{10, 20})

	row := ex.Row(1)
	if len(row) != 2 || row[0] != 2 || row[1] != 20 {
		t.Errorf("Row(1) = %v, want [2 20]", row)
	}
}

func TestExogenousSetSlice(t *testing.T) {
	ex := NewExogenousSet().Add("a", []float64{1, 2, 3, 4})

	part := ex.Slice(1, 3)
	if part.Len() != 2 {
		t.Fatalf("Slice length = %d, want 2", part.Len())
	}
	if part.Columns["a"][0] != 2 {
		t.Errorf("Slice values = %v", part.Columns["a"])
	}

	// Slices must not alias the source
	part.Columns["a"][0] = 99
	if ex.Columns["a"][1] != 2 {
		t.Error("Slice should copy column data")
	}
}

func TestExogenousSetSelect(t *testing.T) {
	ex := NewExogenousSet().
		Add("a", []float64{1}).
		Add("b", []float64{2}).
		Add("c", []float64{3})

	sel, err := ex.Select([]string{"c", "a"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sel.NumColumns() != 2 {
		t.Fatalf("Select kept %d columns, want 2", sel.NumColumns())
	}
	if sel.Names[0] != "c" {
		t.Errorf("Select order = %v, want requested order", sel.Names)
	}

	if _, err := ex.Select([]string{"missing"}); err == nil {
		t.Error("Select of a missing column should fail")
	}
}
