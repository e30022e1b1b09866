package calculator

import (
	"math"
	"time"

	"CurveWatch/internal/table"
)

// daysPerYear smooths leap years; the exact constant matters for
// reproducibility, do not change it to 365.
const daysPerYear = 365.25

// YearsBetween returns the residual maturity in years from ref to
// maturity, day difference divided by 365.25, rounded to 2 decimals.
// The result is negative when the instrument has already matured;
// callers building curves filter that out, this function does not.
func YearsBetween(maturity, ref time.Time) float64 {
	days := maturity.Sub(ref).Hours() / 24
	return round2(days / daysPerYear)
}

// YearsToMaturity coerces an 8-digit YYYYMMDD maturity value and
// returns the residual maturity relative to ref. ok is false when the
// raw value is not a parseable date; it is never an error condition.
func YearsToMaturity(maturityRaw string, ref time.Time) (float64, bool) {
	s := table.CoerceDate8(maturityRaw)
	if s == "" {
		return 0, false
	}
	m, err := time.Parse("20060102", s)
	if err != nil {
		return 0, false
	}
	return YearsBetween(m, ref), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
