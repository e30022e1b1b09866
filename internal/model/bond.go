package model

import (
	"strings"
	"time"
)

// Tokens marking Japanese government bonds: the issue-type column says
// 国債, while series labels spell out 利付国庫債券 and friends.
const (
	govMarker       = "国債"
	govSeriesMarker = "国庫債券"
)

// Observation is one bond reference record for a single trading date.
// Pointer fields are nil when the source field was missing or failed to
// parse; nil is never collapsed to zero.
type Observation struct {
	ReferenceDate time.Time  `json:"reference_date"`
	IssueType     string     `json:"issue_type"`
	Code          string     `json:"code"`
	SeriesLabel   string     `json:"series_label"`
	IssuerName    string     `json:"issuer_name,omitempty"`
	MaturityDate  *time.Time `json:"maturity_date,omitempty"`
	CouponRate    *float64   `json:"coupon_rate,omitempty"`
	CompoundYield *float64   `json:"compound_yield,omitempty"`
	SimpleYield   *float64   `json:"simple_yield,omitempty"`
	Price         *float64   `json:"price,omitempty"`

	// Derived from MaturityDate and ReferenceDate, days/365.25 rounded
	// to 2 decimals. May be negative for matured instruments.
	YearsToMaturity *float64 `json:"years_to_maturity,omitempty"`
}

// IsGovernment reports whether the record is a government instrument.
// Government records feed the benchmark curve and never appear in
// issuer candidate lists.
func (o *Observation) IsGovernment() bool {
	return strings.Contains(o.IssueType, govMarker) ||
		strings.Contains(o.SeriesLabel, govMarker) ||
		strings.Contains(o.SeriesLabel, govSeriesMarker)
}

// SpreadPoint is a plot-ready issuer observation annotated with the
// interpolated benchmark yield and the credit spread over it.
type SpreadPoint struct {
	Code            string  `json:"code"`
	SeriesLabel     string  `json:"series_label"`
	IssuerName      string  `json:"issuer_name"`
	YearsToMaturity float64 `json:"years_to_maturity"`
	Yield           float64 `json:"yield"`
	GovYield        float64 `json:"gov_yield"`
	Spread          float64 `json:"spread"`
	SpreadBp        float64 `json:"spread_bp"`
}
