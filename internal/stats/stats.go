// Package stats computes the summary error metrics (mean absolute
// error, R²) overlaid on parity plots.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics holds the summary metrics for one pair of value arrays.
type Metrics struct {
	MAE float64
	R2  float64
	N   int // pairs remaining after NaN masking
}

// Compute drops index positions where either array is NaN, then
// computes the mean absolute error and the coefficient of
// determination R² = 1 - ss_res/ss_tot with ss_tot taken about the
// mean of xs. Mismatched lengths are a precondition failure.
func Compute(xs, ys []float64) (Metrics, error) {
	if len(xs) != len(ys) {
		return Metrics{}, fmt.Errorf("stats: array lengths differ: %d vs %d", len(xs), len(ys))
	}

	mx := make([]float64, 0, len(xs))
	my := make([]float64, 0, len(ys))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		mx = append(mx, xs[i])
		my = append(my, ys[i])
	}
	if len(mx) == 0 {
		return Metrics{}, fmt.Errorf("stats: no valid pairs after dropping NaNs")
	}

	abs := make([]float64, len(mx))
	for i := range mx {
		abs[i] = math.Abs(mx[i] - my[i])
	}
	mae := stat.Mean(abs, nil)

	mean := stat.Mean(mx, nil)
	var ssRes, ssTot float64
	for i := range mx {
		ssRes += (mx[i] - my[i]) * (mx[i] - my[i])
		ssTot += (mx[i] - mean) * (mx[i] - mean)
	}
	var r2 float64
	if ssTot == 0 {
		// Constant xs carry no variance to explain; R² is defined
		// as 0 in that case.
		r2 = 0
	} else {
		r2 = 1 - ssRes/ssTot
	}

	return Metrics{MAE: mae, R2: r2, N: len(mx)}, nil
}

// SummaryOptions formats a metrics annotation.
type SummaryOptions struct {
	// Prefix is prepended before the metrics, e.g. a plot title.
	Prefix string
	// Suffix is appended after the metrics.
	Suffix string
	// Prec is the number of decimal places. Defaults to 3.
	Prec int
}

// Summary formats the metrics as the two-line annotation text.
func (m Metrics) Summary(opts SummaryOptions) string {
	prec := opts.Prec
	if prec <= 0 {
		prec = 3
	}
	return fmt.Sprintf("%sMAE = %.*f\nR² = %.*f%s",
		opts.Prefix, prec, m.MAE, prec, m.R2, opts.Suffix)
}
