package models

import (
	"errors"
	"math"
	"testing"
)

func TestAppendNormalisesCells(t *testing.T) {
	tbl := NewTable(ColArea, ColPrice, ColDistrict)
	tbl.Append(Row{ColArea: 50, ColPrice: math.NaN(), "extra": "ignored"})

	r := tbl.Rows[0]
	if r[ColArea] != float64(50) {
		t.Errorf("area: got %#v, want float64(50)", r[ColArea])
	}
	if r[ColPrice] != nil {
		t.Errorf("NaN price should be stored as missing, got %#v", r[ColPrice])
	}
	if v, ok := r[ColDistrict]; !ok || v != nil {
		t.Errorf("absent district should be an explicit nil, got %#v (present=%v)", v, ok)
	}
	if _, ok := r["extra"]; ok {
		t.Error("unknown columns should be dropped")
	}
}

func TestRequire(t *testing.T) {
	tbl := NewTable(InputColumns...)
	if err := tbl.Require(InputColumns...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tbl = NewTable(ColArea, ColPrice)
	err := tbl.Require(ColArea, ColDistrict)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestAddColumnIsIdempotent(t *testing.T) {
	tbl := NewTable(ColDescription)
	tbl.Append(Row{ColDescription: "იყიდება"})

	tbl.AddColumn(ColTransactionType)
	tbl.Rows[0][ColTransactionType] = "იყიდება"
	tbl.AddColumn(ColTransactionType)

	if len(tbl.Columns) != 2 {
		t.Errorf("columns: got %v", tbl.Columns)
	}
	if tbl.Rows[0][ColTransactionType] != "იყიდება" {
		t.Error("re-adding a column must not reset its values")
	}
}

func TestShapeAndNullCounts(t *testing.T) {
	tbl := NewTable(ColPrice, ColDistrict)
	tbl.Append(Row{ColPrice: 1.0, ColDistrict: "ვაკე"})
	tbl.Append(Row{ColPrice: nil})
	tbl.Append(Row{ColDistrict: ""})

	rows, cols := tbl.Shape()
	if rows != 3 || cols != 2 {
		t.Errorf("shape: got %dx%d, want 3x2", rows, cols)
	}

	nulls := tbl.NullCounts()
	if nulls[ColPrice] != 2 {
		t.Errorf("price nulls: got %d, want 2", nulls[ColPrice])
	}
	if nulls[ColDistrict] != 1 {
		t.Errorf("district nulls: got %d, want 1", nulls[ColDistrict])
	}
}
