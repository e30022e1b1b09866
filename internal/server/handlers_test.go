package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"CurveWatch/internal/pipeline"
	"CurveWatch/internal/source"
)

const fixtureTSV = "20240105\t国債\tG1\t利付国庫債券（２年）第１回\t20250105\t0.1\t0.50\n" +
	"20240105\t国債\tG2\t利付国庫債券（５年）第２回\t20290105\t0.1\t1.00\n" +
	"20240105\t社債\tC1\tテスト自動車１\t20270105\t0.5\t1.25\n"

func testServer(t *testing.T, fetcher source.Fetcher) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(pipeline.New(fetcher, nil, nil)).Router())
	t.Cleanup(srv.Close)
	return srv
}

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	payload, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(fixtureTSV))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return testServer(t, &source.MockFetcher{Payload: payload})
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
}

func TestHandleCurve(t *testing.T) {
	srv := fixtureServer(t)

	var body struct {
		Date  string `json:"date"`
		Knots []struct {
			Years float64 `json:"years"`
			Yield float64 `json:"yield"`
		} `json:"knots"`
	}
	getJSON(t, srv.URL+"/api/curve?date=2024-01-05", http.StatusOK, &body)

	if body.Date != "2024-01-05" {
		t.Errorf("date = %q", body.Date)
	}
	if len(body.Knots) != 2 {
		t.Fatalf("knots = %d, want 2", len(body.Knots))
	}
	// Knots come out in ascending maturity order.
	if body.Knots[0].Years != 1 || body.Knots[0].Yield != 0.50 {
		t.Errorf("knot[0] = %+v", body.Knots[0])
	}
	if body.Knots[1].Years != 5 || body.Knots[1].Yield != 1.00 {
		t.Errorf("knot[1] = %+v", body.Knots[1])
	}
}

func TestHandlePoints(t *testing.T) {
	srv := fixtureServer(t)

	var body struct {
		Issuer string `json:"issuer"`
		Points []struct {
			Code            string  `json:"code"`
			YearsToMaturity float64 `json:"years_to_maturity"`
			Yield           float64 `json:"yield"`
			GovYield        float64 `json:"gov_yield"`
			Spread          float64 `json:"spread"`
			SpreadBp        float64 `json:"spread_bp"`
		} `json:"points"`
	}
	getJSON(t, srv.URL+"/api/points?date=2024-01-05&issuer="+url.QueryEscape("テスト自動車"), http.StatusOK, &body)

	if len(body.Points) != 1 {
		t.Fatalf("points = %d, want 1", len(body.Points))
	}
	p := body.Points[0]
	if p.Code != "C1" || p.YearsToMaturity != 3.0 || p.GovYield != 0.75 || p.SpreadBp != 50 {
		t.Errorf("point = %+v", p)
	}
}

func TestHandleIssuers(t *testing.T) {
	srv := fixtureServer(t)

	var body struct {
		Issuers []string `json:"issuers"`
	}
	getJSON(t, srv.URL+"/api/issuers?date=2024-01-05&q="+url.QueryEscape("テスト"), http.StatusOK, &body)
	if len(body.Issuers) != 1 || body.Issuers[0] != "テスト自動車" {
		t.Errorf("issuers = %v", body.Issuers)
	}

	// Empty query returns an empty list, not the full catalogue.
	getJSON(t, srv.URL+"/api/issuers?date=2024-01-05", http.StatusOK, &body)
	if len(body.Issuers) != 0 {
		t.Errorf("issuers for empty query = %v", body.Issuers)
	}
}

func TestBadRequests(t *testing.T) {
	srv := fixtureServer(t)

	getJSON(t, srv.URL+"/api/curve", http.StatusBadRequest, nil)
	getJSON(t, srv.URL+"/api/curve?date=05-01-2024", http.StatusBadRequest, nil)
	getJSON(t, srv.URL+"/api/points?date=2024-01-05", http.StatusBadRequest, nil)
}

func TestNoFileForDate(t *testing.T) {
	srv := testServer(t, &source.MockFetcher{
		Err: &source.StatusError{URL: "x", Code: http.StatusNotFound},
	})
	getJSON(t, srv.URL+"/api/curve?date=2024-01-06", http.StatusNotFound, nil)
}

func TestCorruptUpstream(t *testing.T) {
	srv := testServer(t, &source.MockFetcher{Payload: []byte("a\tb\n")})
	getJSON(t, srv.URL+"/api/curve?date=2024-01-05", http.StatusBadGateway, nil)
}
