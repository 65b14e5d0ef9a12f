package render

import "math"

// Norm maps raw heat values onto [0, 1], either linearly or
// logarithmically. ±Inf and NaN inputs pass through Value unchanged so
// the tile policy can distinguish them from ordinary values.
type Norm struct {
	Min float64
	Max float64
	Log bool
}

// autoscale fits the norm's domain to the finite values of vals,
// ignoring ±Inf and NaN. Log norms fit only positive values.
func (n *Norm) autoscale(vals []float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, x := range vals {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			continue
		}
		if n.Log && x <= 0 {
			continue
		}
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	if min > max {
		// No usable values; keep a degenerate unit domain.
		min, max = 0, 1
		if n.Log {
			min = 1
			max = 10
		}
	}
	n.Min, n.Max = min, max
}

// clampMax raises the norm's upper bound to limit, but only when the
// limit exceeds the observed maximum; a lower cap would clip tiles.
func (n *Norm) clampMax(limit float64) {
	if limit > n.Max {
		n.Max = limit
	}
}

// Value normalizes x onto [0, 1]. ±Inf and NaN are returned as-is.
func (n *Norm) Value(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	if n.Log {
		if x <= 0 {
			return 0
		}
		lo, hi := math.Log(n.Min), math.Log(n.Max)
		if hi == lo {
			return 0
		}
		return clamp01((math.Log(x) - lo) / (hi - lo))
	}
	if n.Max == n.Min {
		return 0
	}
	return clamp01((x - n.Min) / (n.Max - n.Min))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
