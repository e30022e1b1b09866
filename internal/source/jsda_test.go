package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testDate() time.Time {
	return time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
}

func testFetcher(baseURL string) *JSDAFetcher {
	f := NewJSDAFetcher(baseURL, "")
	f.Delay = 0 // no need to sleep between attempts in tests
	return f
}

func TestFileName(t *testing.T) {
	if got := FileName(testDate()); got != "S240105.csv" {
		t.Errorf("FileName = %q, want S240105.csv", got)
	}
}

func TestJSDAFetcher_URL(t *testing.T) {
	f := NewJSDAFetcher("", "")
	want := "https://market.jsda.or.jp/shijyo/saiken/baibai/baisanchi/files/2024/S240105.csv"
	if got := f.URL(testDate()); got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestJSDAFetcher_RetriesTransientFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	payload, err := testFetcher(srv.URL).Fetch(testDate())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(payload) != "payload" {
		t.Errorf("payload = %q", payload)
	}
	if hits != 3 {
		t.Errorf("hits = %d, want 3", hits)
	}
}

func TestJSDAFetcher_ExhaustsAttempts(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Fetch(testDate())
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if hits != 3 {
		t.Errorf("hits = %d, want 3", hits)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("err = %v, want wrapped StatusError 500", err)
	}
}

func TestJSDAFetcher_NotFoundIsNotRetried(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Fetch(testDate())
	if !NotFound(err) {
		t.Errorf("err = %v, want 404 StatusError", err)
	}
	if hits != 1 {
		t.Errorf("hits = %d, want 1 (no retry on 404)", hits)
	}
}
