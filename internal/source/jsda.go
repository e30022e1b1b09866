package source

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the JSDA distribution point for the daily
// reference-statistics files.
const DefaultBaseURL = "https://market.jsda.or.jp/shijyo/saiken/baibai/baisanchi/files"

// JSDAFetcher downloads the daily file from the JSDA website.
type JSDAFetcher struct {
	BaseURL  string
	Client   *http.Client
	Attempts int
	Delay    time.Duration
}

// NewJSDAFetcher creates a fetcher with the default retry discipline:
// 30s per-attempt timeout, 3 attempts, 1s between attempts.
func NewJSDAFetcher(baseURL, proxyURL string) *JSDAFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &JSDAFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Attempts: 3,
		Delay:    time.Second,
	}
}

func (f *JSDAFetcher) Name() string { return "jsda" }

// FileName returns the published file name for a date, Syymmdd.csv.
func FileName(date time.Time) string {
	return fmt.Sprintf("S%s.csv", date.Format("060102"))
}

// URL returns the full download URL for a date. Files are grouped in
// per-year directories.
func (f *JSDAFetcher) URL(date time.Time) string {
	return fmt.Sprintf("%s/%d/%s", f.BaseURL, date.Year(), FileName(date))
}

// Fetch downloads the raw payload, retrying transient failures up to
// the attempt ceiling. A 404 is not retried: the file does not exist
// for that date and will not start existing a second later.
func (f *JSDAFetcher) Fetch(date time.Time) ([]byte, error) {
	u := f.URL(date)
	var lastErr error
	for attempt := 1; attempt <= f.Attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(f.Delay)
		}
		payload, err := f.fetchOnce(u)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if NotFound(err) {
			return nil, err
		}
		log.Printf("[WARN] fetch attempt %d/%d failed: %v", attempt, f.Attempts, err)
	}
	return nil, fmt.Errorf("fetch %s: %d attempts exhausted: %w", u, f.Attempts, lastErr)
}

func (f *JSDAFetcher) fetchOnce(u string) ([]byte, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsda fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jsda read body: %w", err)
	}
	return body, nil
}
