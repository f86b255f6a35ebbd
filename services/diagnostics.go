package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"apartments-cleaner/models"
	"apartments-cleaner/utils"
)

// DiagnosticsService summarises a table before and after cleaning. It never
// mutates the table.
type DiagnosticsService struct {
	logger *utils.Logger
}

func NewDiagnosticsService(logger *utils.Logger) *DiagnosticsService {
	return &DiagnosticsService{logger: logger}
}

func (s *DiagnosticsService) Generate(t *models.Table) *models.DiagnosticsReport {
	rows, cols := t.Shape()
	report := &models.DiagnosticsReport{
		Rows:        rows,
		Columns:     cols,
		NullCounts:  t.NullCounts(),
		ColumnOrder: append([]string(nil), t.Columns...),
	}

	for _, col := range t.Columns {
		info, values := inspectColumn(t, col)
		report.Info = append(report.Info, info)
		if info.Kind == models.KindNumeric {
			report.Describe = append(report.Describe, describe(col, values))
		}
	}

	return report
}

// inspectColumn infers the column kind and collects its numeric values.
func inspectColumn(t *models.Table, col string) (models.ColumnInfo, []float64) {
	info := models.ColumnInfo{Name: col, Kind: models.KindEmpty}
	var values []float64

	for _, r := range t.Rows {
		v := r[col]
		if models.IsMissing(v) {
			continue
		}
		info.NonNull++

		var kind models.ColumnKind
		switch x := v.(type) {
		case float64:
			kind = models.KindNumeric
			values = append(values, x)
		case time.Time:
			kind = models.KindDatetime
		default:
			kind = models.KindText
		}

		switch info.Kind {
		case models.KindEmpty:
			info.Kind = kind
		case kind:
		default:
			info.Kind = models.KindMixed
		}
	}

	return info, values
}

func describe(col string, values []float64) models.NumericStats {
	st := models.NumericStats{Column: col, Count: len(values)}
	if len(values) == 0 {
		return st
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	st.Mean = total / float64(len(sorted))

	// Sample standard deviation; undefined for a single value.
	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - st.Mean) * (v - st.Mean)
		}
		st.Std = math.Sqrt(sq / float64(len(sorted)-1))
	} else {
		st.Std = math.NaN()
	}

	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.P25 = percentile(sorted, 0.25)
	st.P50 = percentile(sorted, 0.50)
	st.P75 = percentile(sorted, 0.75)
	return st
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func (s *DiagnosticsService) Print(r *models.DiagnosticsReport) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  APARTMENTS DATASET DIAGNOSTICS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Shape\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Rows    : \033[1m%d\033[0m\n", r.Rows)
	fmt.Printf("  Columns : \033[1m%d\033[0m\n", r.Columns)
	fmt.Println()

	fmt.Printf("\033[1;33m  Info\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-4s %-20s %-10s %s\n", "#", "Column", "Non-Null", "Kind")
	for i, c := range r.Info {
		fmt.Printf("  %-4d %-20s %-10d %s\n", i, c.Name, c.NonNull, c.Kind)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Description\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Describe) == 0 {
		fmt.Printf("  No numeric columns\n")
	} else {
		fmt.Printf("  %-16s %6s %12s %12s %12s %12s %12s %12s %12s\n",
			"", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
		for _, d := range r.Describe {
			fmt.Printf("  %-16s %6d %12.2f %12.2f %12.2f %12.2f %12.2f %12.2f %12.2f\n",
				truncate(d.Column, 16), d.Count, d.Mean, d.Std, d.Min, d.P25, d.P50, d.P75, d.Max)
		}
	}
	fmt.Println()

	s.PrintNullCounts(r)
}

// PrintNullCounts prints only the per-column missing-value counts.
func (s *DiagnosticsService) PrintNullCounts(r *models.DiagnosticsReport) {
	thin := strings.Repeat("─", 64)

	fmt.Printf("\033[1;33m  Null values\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, col := range r.ColumnOrder {
		n := r.NullCounts[col]
		color := "32"
		if n > 0 {
			color = "31"
		}
		fmt.Printf("  %-20s \033[1;%sm%d\033[0m\n", col, color, n)
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
