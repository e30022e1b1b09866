package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"CurveWatch/internal/model"
	"CurveWatch/internal/source"
	"CurveWatch/internal/table"
)

type errResponse struct {
	Error string `json:"error"`
}

// knot is one benchmark curve point in the JSON output.
type knot struct {
	Years float64 `json:"years"`
	Yield float64 `json:"yield"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok", "source": s.Pipeline.Fetcher.Name()})
}

func (s *Server) handleIssuers(w http.ResponseWriter, r *http.Request) {
	date, ok := queryDate(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")

	names, err := s.Pipeline.Issuers(date, query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	render.JSON(w, r, map[string]any{"date": date.Format("2006-01-02"), "issuers": names})
}

func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	date, ok := queryDate(w, r)
	if !ok {
		return
	}
	res, err := s.Pipeline.Run(date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	knots := make([]knot, 0, len(res.Curve))
	for _, k := range res.Curve.Knots() {
		knots = append(knots, knot{Years: k, Yield: res.Curve[k]})
	}
	render.JSON(w, r, map[string]any{"date": date.Format("2006-01-02"), "knots": knots})
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	date, ok := queryDate(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("issuer")
	if name == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: "issuer parameter is required"})
		return
	}
	points, err := s.Pipeline.IssuerPoints(date, name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if points == nil {
		points = []model.SpreadPoint{}
	}
	render.JSON(w, r, map[string]any{
		"date":   date.Format("2006-01-02"),
		"issuer": name,
		"points": points,
	})
}

func queryDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: "date parameter is required (YYYY-MM-DD)"})
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errResponse{Error: "invalid date, want YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

// writeError maps pipeline failures onto HTTP statuses. Nothing here
// ever panics the process; every failure path ends in a typed JSON
// body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *table.SchemaError
	var decodeErr *source.DecodeError

	switch {
	case source.NotFound(err):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errResponse{Error: "no data available for the selected date"})
	case errors.As(err, &schemaErr), errors.As(err, &decodeErr):
		log.Printf("[ERROR] bad upstream data: %v", err)
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, errResponse{Error: err.Error()})
	default:
		log.Printf("[ERROR] pipeline: %v", err)
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, errResponse{Error: "upstream fetch failed"})
	}
}
