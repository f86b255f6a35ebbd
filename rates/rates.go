// Package rates supplies the GEL to USD exchange rate the cleaning pipeline
// converts Lari-denominated amounts with.
package rates

import (
	"context"
	"fmt"
	"math"

	"apartments-cleaner/models"
)

// Provider returns the multiplier that converts GEL amounts to USD.
type Provider interface {
	Rate(ctx context.Context) (float64, error)
}

// Static is a fixed, preconfigured rate.
type Static float64

func (s Static) Rate(ctx context.Context) (float64, error) {
	return validate(float64(s))
}

func validate(rate float64) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, fmt.Errorf("rates: %w: %v", models.ErrInvalidRate, rate)
	}
	return rate, nil
}
