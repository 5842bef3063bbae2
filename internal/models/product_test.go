package models

import "testing"

func TestRecomputeTotal(t *testing.T) {
	p := Product{GoodQty: 4, DamagedQty: 2, Gift: 1, TotalQty: 99}
	p.RecomputeTotal()
	if p.TotalQty != 7 {
		t.Errorf("TotalQty = %d, want 7", p.TotalQty)
	}
}

func TestVarianceAndMismatch(t *testing.T) {
	p := Product{RequiredQty: 10, GoodQty: 7}
	p.RecomputeTotal()
	if got := p.Variance(); got != -3 {
		t.Errorf("Variance() = %d, want -3", got)
	}
	if !p.Mismatched() {
		t.Error("Mismatched() = false, want true")
	}

	p.GoodQty = 10
	p.RecomputeTotal()
	if p.Mismatched() {
		t.Error("Mismatched() = true, want false")
	}
}

func TestSafeInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"7", 7},
		{"7.9", 7},
		{" 12 ", 12},
		{"", 0},
		{"abc", 0},
		{"-3", -3},
	}
	for _, c := range cases {
		if got := SafeInt(c.in); got != c.want {
			t.Errorf("SafeInt(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSafeFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{" 2 ", 2},
		{"", 0},
		{"x", 0},
	}
	for _, c := range cases {
		if got := SafeFloat(c.in); got != c.want {
			t.Errorf("SafeFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEditableIndexes(t *testing.T) {
	idx := EditableIndexes()
	if len(idx) != len(EditableFields) {
		t.Fatalf("got %d editable indexes, want %d", len(idx), len(EditableFields))
	}
	for _, i := range idx {
		if !EditableFields[Columns[i]] {
			t.Errorf("column %q at index %d is not editable", Columns[i], i)
		}
	}
	for j := 1; j < len(idx); j++ {
		if idx[j] <= idx[j-1] {
			t.Errorf("indexes not strictly increasing: %v", idx)
		}
	}
}

func TestCellValueFormatsCurrency(t *testing.T) {
	p := Product{Cost: 1.5, Retail: 3}
	if got := CellValue(&p, ColCost); got != "1.50" {
		t.Errorf("CellValue(cost) = %q, want \"1.50\"", got)
	}
	if got := CellValue(&p, ColRetail); got != "3.00" {
		t.Errorf("CellValue(retail) = %q, want \"3.00\"", got)
	}
	if got := CellValue(&p, "bogus"); got != "" {
		t.Errorf("CellValue(bogus) = %q, want empty", got)
	}
}
