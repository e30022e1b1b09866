package calculator

import (
	"math"
	"sort"

	"CurveWatch/internal/model"
)

// Curve maps an integer-year maturity bucket to the mean yield of the
// government instruments that fall into it.
type Curve map[float64]float64

// yieldCeiling guards against sentinel values in the source feed
// ("no data" encoded as 9999 and the like).
const yieldCeiling = 999

// BuildBenchmark constructs the government yield curve from a day's
// observations. Non-government records, records without a usable
// maturity or yield, matured instruments and sentinel yields are all
// dropped. Buckets are rounded to the nearest whole year and averaged,
// so the result is independent of input order. An empty input produces
// an empty curve, not an error.
func BuildBenchmark(observations []model.Observation) Curve {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, o := range observations {
		if !o.IsGovernment() {
			continue
		}
		if o.YearsToMaturity == nil || o.CompoundYield == nil {
			continue
		}
		years, yield := *o.YearsToMaturity, *o.CompoundYield
		if years < 0 || yield > yieldCeiling {
			continue
		}
		bucket := math.Round(years)
		sums[bucket] += yield
		counts[bucket]++
	}
	curve := make(Curve, len(sums))
	for bucket, sum := range sums {
		curve[bucket] = sum / float64(counts[bucket])
	}
	return curve
}

// Knots returns the curve's maturities in ascending order.
func (c Curve) Knots() []float64 {
	knots := make([]float64, 0, len(c))
	for k := range c {
		knots = append(knots, k)
	}
	sort.Float64s(knots)
	return knots
}

// Interpolate estimates the benchmark yield at an arbitrary residual
// maturity by clamped piecewise-linear interpolation over the curve's
// knots. Outside the knot range the boundary knot's value is returned
// as-is (flat extrapolation). ok is false only for an empty curve.
func Interpolate(years float64, c Curve) (float64, bool) {
	if len(c) == 0 {
		return 0, false
	}
	if v, ok := c[years]; ok {
		return v, true
	}
	knots := c.Knots()
	if years <= knots[0] {
		return c[knots[0]], true
	}
	if years >= knots[len(knots)-1] {
		return c[knots[len(knots)-1]], true
	}
	i := sort.SearchFloat64s(knots, years)
	// knots[i-1] < years < knots[i] here; exact hits returned above.
	y0, y1 := knots[i-1], knots[i]
	r0, r1 := c[y0], c[y1]
	return round4(r0 + (r1-r0)*(years-y0)/(y1-y0)), true
}
