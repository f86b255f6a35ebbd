package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"apartments-cleaner/models"
	"apartments-cleaner/utils"
)

const (
	// AreaSuffix is the square-meter unit appended to scraped areas.
	AreaSuffix = "მ²"
	// USDMarker marks amounts already denominated in the canonical currency.
	USDMarker = "$"
	// PeriodSeparator splits "price / unit" strings such as "1,200 $/მ²".
	PeriodSeparator = "/"
)

// Cleaner holds the per-run inputs the row-level rules depend on: the GEL to
// USD exchange rate and the clock used to date listings.
type Cleaner struct {
	rate   decimal.Decimal
	now    func() time.Time
	logger *utils.Logger
}

// NewCleaner creates a Cleaner converting GEL amounts with rate.
func NewCleaner(rate float64, logger *utils.Logger) (*Cleaner, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, fmt.Errorf("cleaner: %w: %v", models.ErrInvalidRate, rate)
	}
	return &Cleaner{
		rate:   decimal.NewFromFloat(rate),
		now:    time.Now,
		logger: logger,
	}, nil
}

// WithClock replaces the clock that supplies the current year for upload dates.
func (c *Cleaner) WithClock(now func() time.Time) *Cleaner {
	c.now = now
	return c
}

// Rate returns the exchange rate the cleaner converts with.
func (c *Cleaner) Rate() float64 {
	return c.rate.InexactFloat64()
}

// ParseArea strips the square-meter suffix and coerces the rest to a number.
//
//	"55.5 მ²" → 55.5
//	"72"      → 72
//	"n/a"     → missing
func ParseArea(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		v = strings.TrimSuffix(s, AreaSuffix)
	}
	return coerce(v)
}

// ParsePrice normalises a price cell to USD.
//
//	"$120,000"  → 120000 (no conversion)
//	"250,000"   → round(250000 * rate)
//	"შეთანხმებით" → missing
func (c *Cleaner) ParsePrice(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return coerce(v)
	}

	s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if strings.Contains(s, USDMarker) {
		return parseNumber(strings.ReplaceAll(s, USDMarker, ""))
	}

	n, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return c.convert(n), true
}

// ParsePricePerSqm resolves the price-per-square-meter cell of a row whose
// price and area columns have already been cleaned. A present value is
// normalised like a price; an absent one is derived as price // area.
func (c *Cleaner) ParsePricePerSqm(row models.Row) (float64, bool) {
	v := row[models.ColPricePerSqm]
	if models.IsMissing(v) {
		return derivePricePerSqm(row[models.ColPrice], row[models.ColArea])
	}

	s, ok := v.(string)
	if !ok {
		return coerce(v)
	}

	s = strings.TrimSpace(s)
	if i := strings.Index(s, PeriodSeparator); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.ReplaceAll(s, ",", "")

	if strings.Contains(s, USDMarker) {
		return parseNumber(strings.ReplaceAll(s, USDMarker, ""))
	}

	n, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return c.convert(n), true
}

// derivePricePerSqm truncates both operands to integers and floor-divides.
// Missing operands and a zero area yield missing.
func derivePricePerSqm(price, area any) (float64, bool) {
	p, ok := coerce(price)
	if !ok {
		return 0, false
	}
	a, ok := coerce(area)
	if !ok {
		return 0, false
	}

	p, a = math.Trunc(p), math.Trunc(a)
	if a == 0 {
		return 0, false
	}
	return math.Floor(p / a), true
}

// convert multiplies a GEL amount by the rate and rounds half to even.
func (c *Cleaner) convert(amount float64) float64 {
	return decimal.NewFromFloat(amount).Mul(c.rate).RoundBank(0).InexactFloat64()
}

// coerce turns a cell into a number. Numbers pass through unchanged, which
// keeps the numeric rules idempotent on an already-cleaned table.
func coerce(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return coerce(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		return parseNumber(x)
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
