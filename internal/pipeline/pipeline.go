// Package pipeline runs one date's query end to end: fetch, decode,
// normalize, curve construction, spread annotation. Each run rebuilds
// the whole model from the raw table; only the fetched table itself is
// cached between queries.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"CurveWatch/internal/calculator"
	"CurveWatch/internal/issuer"
	"CurveWatch/internal/model"
	"CurveWatch/internal/session"
	"CurveWatch/internal/source"
	"CurveWatch/internal/store"
	"CurveWatch/internal/table"
)

// Stage identifies where in the per-query state machine a run is, or
// where it failed.
type Stage string

const (
	StageIdle          Stage = "idle"
	StageFetching      Stage = "fetching"
	StageNormalizing   Stage = "normalizing"
	StageCurveBuilding Stage = "curve_building"
	StageInterpolating Stage = "interpolating"
	StageReady         Stage = "ready"
	StageFailed        Stage = "failed"
)

// StageError wraps a failure with the stage it occurred in. Failed is
// terminal for the request; the next date selection starts fresh.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline wires a fetcher, the caller-owned session cache and the
// optional payload store. All methods are synchronous; one query runs
// to completion before the next is processed.
type Pipeline struct {
	Fetcher source.Fetcher
	Cache   *session.TableCache
	Store   store.Store
}

func New(fetcher source.Fetcher, cache *session.TableCache, st store.Store) *Pipeline {
	if st == nil {
		st = store.NewNoopStore()
	}
	return &Pipeline{Fetcher: fetcher, Cache: cache, Store: st}
}

// Result is a completed run for one date.
type Result struct {
	Date         time.Time
	Stage        Stage
	Observations []model.Observation
	Curve        calculator.Curve
}

// Run executes fetch through curve construction for a date.
func (p *Pipeline) Run(date time.Time) (*Result, error) {
	tbl, err := p.normalizedTable(date)
	if err != nil {
		return nil, err
	}

	observations := buildObservations(tbl, date)
	curve := calculator.BuildBenchmark(observations)
	log.Printf("[INFO] %s: %d observations, %d curve knots",
		date.Format("2006-01-02"), len(observations), len(curve))

	return &Result{
		Date:         date,
		Stage:        StageReady,
		Observations: observations,
		Curve:        curve,
	}, nil
}

// normalizedTable resolves the table for a date: session cache first,
// then the payload store, then the network. A fresh network payload is
// written back to the store before decoding.
func (p *Pipeline) normalizedTable(date time.Time) (*table.Table, error) {
	if p.Cache != nil {
		if tbl, ok := p.Cache.Get(date); ok {
			return tbl, nil
		}
	}

	payload, hit, err := p.Store.GetPayload(date)
	if err != nil {
		log.Printf("[WARN] payload store read: %v", err)
		hit = false
	}
	if !hit {
		payload, err = p.Fetcher.Fetch(date)
		if err != nil {
			return nil, &StageError{Stage: StageFetching, Err: err}
		}
		if err := p.Store.PutPayload(date, payload); err != nil {
			log.Printf("[WARN] payload store write: %v", err)
		}
	}

	rows, err := source.Decode(payload)
	if err != nil {
		return nil, &StageError{Stage: StageNormalizing, Err: err}
	}
	tbl, err := table.Normalize(rows)
	if err != nil {
		return nil, &StageError{Stage: StageNormalizing, Err: err}
	}
	if p.Cache != nil {
		p.Cache.Set(date, tbl)
	}
	return tbl, nil
}

// Warm prefetches and caches a date's table, for the scheduler.
func (p *Pipeline) Warm(date time.Time) error {
	_, err := p.normalizedTable(date)
	return err
}

// Issuers returns the issuer names for a date matching the fuzzy
// query. An empty query returns an empty list by contract.
func (p *Pipeline) Issuers(date time.Time, query string) ([]string, error) {
	res, err := p.Run(date)
	if err != nil {
		return nil, err
	}
	return issuer.Search(res.Observations, query), nil
}

// IssuerPoints returns the spread-annotated plot points for one
// issuer on one date. An issuer with no plottable observations is a
// valid empty set, not a failure.
func (p *Pipeline) IssuerPoints(date time.Time, name string) ([]model.SpreadPoint, error) {
	res, err := p.Run(date)
	if err != nil {
		return nil, err
	}
	var selected []model.Observation
	for _, o := range res.Observations {
		if !o.IsGovernment() && o.IssuerName == name {
			selected = append(selected, o)
		}
	}
	return calculator.AnnotateSpreads(selected, res.Curve), nil
}

// buildObservations maps normalized rows onto canonical observations.
// Field-level parse failures degrade to nil, never abort the run.
func buildObservations(tbl *table.Table, refDate time.Time) []model.Observation {
	observations := make([]model.Observation, 0, len(tbl.Rows))
	for i := range tbl.Rows {
		o := model.Observation{
			ReferenceDate: refDate,
			IssueType:     tbl.Cell(i, table.ColIssueType),
			Code:          tbl.Cell(i, table.ColCode),
			SeriesLabel:   tbl.Cell(i, table.ColIssues),
			MaturityDate:  tbl.Date8(i, table.ColDueDate),
			CouponRate:    tbl.Float(i, table.ColCouponRate),
			CompoundYield: tbl.Float(i, table.ColCompoundYield),
			SimpleYield:   tbl.Float(i, table.ColSimpleYield),
			Price:         tbl.Float(i, table.ColPrice),
		}
		if !o.IsGovernment() {
			o.IssuerName = issuer.Name(o.SeriesLabel)
		}
		if o.MaturityDate != nil {
			years := calculator.YearsBetween(*o.MaturityDate, refDate)
			if years >= 0 {
				o.YearsToMaturity = &years
			}
		}
		observations = append(observations, o)
	}
	return observations
}
