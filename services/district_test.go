package services

import (
	"testing"

	"apartments-cleaner/models"
)

func TestFillDistrictNulls(t *testing.T) {
	tbl := models.NewTable(models.ColDistrict)
	tbl.Append(models.Row{models.ColDistrict: "ვაკე"})
	tbl.Append(models.Row{models.ColDistrict: nil})
	tbl.Append(models.Row{models.ColDistrict: ""})
	tbl.Append(models.Row{})

	filled := FillDistrictNulls(tbl)
	if filled != 2 {
		t.Errorf("filled: got %d, want 2", filled)
	}

	want := []any{"ვაკე", DistrictNotProvided, "", DistrictNotProvided}
	for i, r := range tbl.Rows {
		if r[models.ColDistrict] != want[i] {
			t.Errorf("row %d: got %#v, want %#v", i, r[models.ColDistrict], want[i])
		}
	}
	if n := tbl.NullCounts()[models.ColDistrict]; n != 0 {
		t.Errorf("expected no missing districts, got %d", n)
	}
}
