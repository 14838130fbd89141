package analysis

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Numbers parses every numeric cell; empty and unparsable cells are dropped.
func Numbers(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if x, ok := ParseNumber(v); ok && !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}

// PositiveNumbers is Numbers without zero and negative values.
func PositiveNumbers(values []string) []float64 {
	all := Numbers(values)
	out := all[:0]
	for _, x := range all {
		if x > 0 {
			out = append(out, x)
		}
	}
	return out
}

// Mean returns the arithmetic mean; ok is false for an empty slice.
func Mean(vals []float64) (mean float64, ok bool) {
	if len(vals) == 0 {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}

var truthy = map[string]bool{"true": true, "sim": true, "yes": true, "s": true, "y": true}

// SumFlags counts households flagged in a yes/no column. Numeric cells add their
// rounded value, so 0/1 columns sum naturally; "true", "sim" and "yes" count as one.
func SumFlags(values []string) int {
	n := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if x, ok := ParseNumber(v); ok {
			n += int(math.Round(x))
			continue
		}
		if truthy[strings.ToLower(v)] {
			n++
		}
	}
	return n
}

// Bin is one histogram bucket. Every bin is [Lower, Upper) except the last, which is closed.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram splits [min, max] of vals into equal-width bins.
func Histogram(vals []float64, bins int) []Bin {
	if len(vals) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = 30
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram bins are half-open; nudge the last edge so max lands in the last bin.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lower: dividers[i], Upper: dividers[i+1], Count: int(counts[i])}
	}
	out[bins-1].Upper = hi
	return out
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := append([]float64(nil), vals...)
	sort.Float64s(cp)
	median = stat.Quantile(0.5, stat.Empirical, cp, nil)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = stat.Quantile(0.5, stat.Empirical, dev, nil)
	return
}
