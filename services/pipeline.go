package services

import (
	"fmt"

	"apartments-cleaner/models"
	"apartments-cleaner/utils"
)

// Pipeline runs the cleaning steps over one table in a fixed order. Later
// steps read the output of earlier ones: price-per-sqm derivation needs the
// cleaned price and area columns.
type Pipeline struct {
	cleaner      *Cleaner
	diagnostics  *DiagnosticsService
	logger       *utils.Logger
	printReports bool
}

// NewPipeline creates a Pipeline that prints diagnostics before and after
// cleaning.
func NewPipeline(cleaner *Cleaner, diagnostics *DiagnosticsService, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		cleaner:      cleaner,
		diagnostics:  diagnostics,
		logger:       logger,
		printReports: true,
	}
}

// PrintReports toggles printing of the diagnostics reports to stdout.
func (p *Pipeline) PrintReports(enabled bool) *Pipeline {
	p.printReports = enabled
	return p
}

type step struct {
	name   string
	column string
	apply  func(r models.Row) any
}

func (p *Pipeline) steps() []step {
	return []step{
		{"price", models.ColPrice, func(r models.Row) any {
			return numberOrNil(p.cleaner.ParsePrice(r[models.ColPrice]))
		}},
		{"area", models.ColArea, func(r models.Row) any {
			return numberOrNil(ParseArea(r[models.ColArea]))
		}},
		{"price per sqm", models.ColPricePerSqm, func(r models.Row) any {
			return numberOrNil(p.cleaner.ParsePricePerSqm(r))
		}},
		{"upload date", models.ColUploadDate, func(r models.Row) any {
			if ts, ok := p.cleaner.ParseUploadDate(r[models.ColUploadDate]); ok {
				return ts
			}
			return nil
		}},
		{"transaction type", models.ColTransactionType, func(r models.Row) any {
			if label, ok := ClassifyTransaction(r[models.ColDescription]); ok {
				return label
			}
			return nil
		}},
	}
}

// Run cleans t in place. The only error is a missing input column, reported
// before any row is touched; malformed values become missing cells instead.
func (p *Pipeline) Run(t *models.Table) (*models.CleaningSummary, error) {
	if err := t.Require(models.InputColumns...); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	rows, cols := t.Shape()
	p.logger.Info("[pipeline] Cleaning %d rows x %d columns (rate %.4f)", rows, cols, p.cleaner.Rate())

	summary := &models.CleaningSummary{
		Rows:             rows,
		MissingAfterStep: make(map[string]int),
	}

	summary.Before = p.diagnostics.Generate(t)
	if p.printReports {
		p.diagnostics.Print(summary.Before)
	}

	t.AddColumn(models.ColTransactionType)

	for _, s := range p.steps() {
		before := t.NullCounts()[s.column]
		for _, r := range t.Rows {
			r[s.column] = s.apply(r)
		}
		after := t.NullCounts()[s.column]
		summary.MissingAfterStep[s.column] = after

		p.logger.Info("[pipeline] %-16s → %d missing", s.name, after)
		if after > before && s.column != models.ColTransactionType {
			p.logger.Debug("[pipeline] %s: %d values could not be parsed", s.name, after-before)
		}
	}

	summary.DistrictsFilled = FillDistrictNulls(t)
	p.logger.Info("[pipeline] Filled %d missing district names", summary.DistrictsFilled)

	summary.After = p.diagnostics.Generate(t)
	if p.printReports {
		p.diagnostics.PrintNullCounts(summary.After)
	}

	return summary, nil
}

func numberOrNil(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}
