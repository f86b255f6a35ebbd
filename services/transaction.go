package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Transaction type labels.
const (
	TransactionSale        = "იყიდება"
	TransactionPledge      = "გირავდება"
	TransactionDailyRent   = "ქირავდება დღიურად"
	TransactionMonthlyRent = "ქირავდება თვიურად"
)

// TransactionMarker maps a substring of a listing description to a label.
type TransactionMarker struct {
	Marker string
	Label  string
}

// TransactionMarkers are checked in order and the first match wins. The
// daily-rent marker contains the generic rent marker, so it must come first.
var TransactionMarkers = []TransactionMarker{
	{Marker: "იყიდება", Label: TransactionSale},
	{Marker: "გირავდება", Label: TransactionPledge},
	{Marker: "ქირავდება დღიურად", Label: TransactionDailyRent},
	{Marker: "ქირავდება", Label: TransactionMonthlyRent},
}

// ClassifyTransaction derives the transaction type from a description.
func ClassifyTransaction(v any) (string, bool) {
	desc, ok := v.(string)
	if !ok {
		return "", false
	}
	desc = foldGeorgian(strings.TrimSpace(desc))

	for _, m := range TransactionMarkers {
		if strings.Contains(desc, m.Marker) {
			return m.Label, true
		}
	}
	return "", false
}

// foldGeorgian maps compatibility letters such as U+10FC to their plain form
// and folds Mtavruli capitals to Mkhedruli, the script the markers use.
func foldGeorgian(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}
