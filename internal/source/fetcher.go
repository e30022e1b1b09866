// Package source obtains the raw JSDA reference-statistics payload for
// a trading date and decodes it into a flat string table.
package source

import (
	"errors"
	"fmt"
	"time"
)

// Fetcher retrieves the raw bond-pricing file for a calendar date.
type Fetcher interface {
	Fetch(date time.Time) ([]byte, error)
	Name() string
}

// StatusError reports a non-success HTTP response. A 404 simply means
// no file was published for that date (weekends, holidays).
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// NotFound reports whether err is a StatusError for a missing file.
func NotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}

// DecodeError reports a payload that is not valid Shift_JIS text.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode payload: " + e.Reason
}
