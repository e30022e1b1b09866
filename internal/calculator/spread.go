package calculator

import "CurveWatch/internal/model"

// AnnotateSpreads composes the maturity, curve and interpolation steps
// for one issuer's observations: each point carries the interpolated
// government yield at its residual maturity and the spread over it, in
// percentage points and in basis points. Observations missing a
// maturity or yield, and observations the curve cannot price (empty
// curve), are left out entirely; a zero-filled point would be
// indistinguishable from a genuine zero spread.
func AnnotateSpreads(observations []model.Observation, curve Curve) []model.SpreadPoint {
	points := make([]model.SpreadPoint, 0, len(observations))
	for _, o := range observations {
		if o.YearsToMaturity == nil || o.CompoundYield == nil {
			continue
		}
		years, yield := *o.YearsToMaturity, *o.CompoundYield
		govYield, ok := Interpolate(years, curve)
		if !ok {
			continue
		}
		spread := yield - govYield
		points = append(points, model.SpreadPoint{
			Code:            o.Code,
			SeriesLabel:     o.SeriesLabel,
			IssuerName:      o.IssuerName,
			YearsToMaturity: years,
			Yield:           yield,
			GovYield:        govYield,
			Spread:          spread,
			SpreadBp:        round1(spread * 100),
		})
	}
	return points
}
