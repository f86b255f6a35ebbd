package services

import (
	"math"
	"testing"
	"time"

	"apartments-cleaner/models"
)

func sampleTable() *models.Table {
	tbl := models.NewTable("price", "district", "uploaded", "notes")
	ts := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	tbl.Append(models.Row{"price": float64(100), "district": "ვაკე", "uploaded": ts, "notes": "a"})
	tbl.Append(models.Row{"price": float64(200), "district": "საბურთალო", "uploaded": ts, "notes": float64(1)})
	tbl.Append(models.Row{"price": float64(300), "district": nil, "uploaded": nil})
	tbl.Append(models.Row{"price": float64(400), "district": "ვაკე", "uploaded": ts})
	return tbl
}

func TestDiagnosticsShapeAndNulls(t *testing.T) {
	svc := NewDiagnosticsService(newTestLogger())
	r := svc.Generate(sampleTable())

	if r.Rows != 4 || r.Columns != 4 {
		t.Errorf("shape: got %dx%d, want 4x4", r.Rows, r.Columns)
	}
	want := map[string]int{"price": 0, "district": 1, "uploaded": 1, "notes": 2}
	for col, n := range want {
		if r.NullCounts[col] != n {
			t.Errorf("nulls[%s]: got %d, want %d", col, r.NullCounts[col], n)
		}
	}
}

func TestDiagnosticsColumnKinds(t *testing.T) {
	svc := NewDiagnosticsService(newTestLogger())
	r := svc.Generate(sampleTable())

	want := map[string]models.ColumnKind{
		"price":    models.KindNumeric,
		"district": models.KindText,
		"uploaded": models.KindDatetime,
		"notes":    models.KindMixed,
	}
	for _, info := range r.Info {
		if info.Kind != want[info.Name] {
			t.Errorf("kind[%s]: got %s, want %s", info.Name, info.Kind, want[info.Name])
		}
	}
}

func TestDiagnosticsDescribe(t *testing.T) {
	svc := NewDiagnosticsService(newTestLogger())
	r := svc.Generate(sampleTable())

	if len(r.Describe) != 1 {
		t.Fatalf("expected 1 numeric column, got %d", len(r.Describe))
	}
	d := r.Describe[0]
	if d.Count != 4 || d.Mean != 250 || d.Min != 100 || d.Max != 400 {
		t.Errorf("unexpected stats: %+v", d)
	}
	if d.P25 != 175 || d.P50 != 250 || d.P75 != 325 {
		t.Errorf("percentiles: got %v/%v/%v, want 175/250/325", d.P25, d.P50, d.P75)
	}
	if math.Abs(d.Std-129.0994) > 1e-3 {
		t.Errorf("std: got %v, want ~129.0994", d.Std)
	}
}

func TestDiagnosticsEmptyTable(t *testing.T) {
	svc := NewDiagnosticsService(newTestLogger())
	r := svc.Generate(models.NewTable("price"))
	if r.Rows != 0 || len(r.Describe) != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
	if r.Info[0].Kind != models.KindEmpty {
		t.Errorf("kind: got %s, want empty", r.Info[0].Kind)
	}
}
