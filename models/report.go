package models

// ColumnKind is the inferred content type of a column.
type ColumnKind string

const (
	KindEmpty    ColumnKind = "empty"
	KindNumeric  ColumnKind = "numeric"
	KindText     ColumnKind = "text"
	KindDatetime ColumnKind = "datetime"
	KindMixed    ColumnKind = "mixed"
)

// ColumnInfo is the per-column summary printed before and after cleaning.
type ColumnInfo struct {
	Name    string
	NonNull int
	Kind    ColumnKind
}

// NumericStats holds descriptive statistics for a numeric column.
type NumericStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	P50    float64
	P75    float64
	Max    float64
}

// DiagnosticsReport is the observational summary of a table.
type DiagnosticsReport struct {
	Rows       int
	Columns    int
	Info       []ColumnInfo
	Describe   []NumericStats
	NullCounts map[string]int
	// ColumnOrder keeps NullCounts printable in table order.
	ColumnOrder []string
}

// CleaningSummary records what a pipeline run changed.
type CleaningSummary struct {
	Rows int
	// MissingAfterStep counts missing values in the step's output column.
	MissingAfterStep map[string]int
	DistrictsFilled  int
	Before           *DiagnosticsReport
	After            *DiagnosticsReport
}
