// Package session holds the per-process cache of normalized tables.
// The cache is owned by the caller and passed into the pipeline entry
// point; nothing in the core reaches for it as ambient state.
package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"CurveWatch/internal/table"
)

// TableCache remembers the normalized table per trading date so that
// repeated issuer selections on the same date skip the fetch entirely.
type TableCache struct {
	c *gocache.Cache
}

// NewTableCache creates a cache whose entries expire after ttl. A zero
// ttl keeps entries for the life of the process.
func NewTableCache(ttl time.Duration) *TableCache {
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	return &TableCache{c: gocache.New(ttl, 10*time.Minute)}
}

func key(date time.Time) string {
	return date.Format("2006-01-02")
}

// Get returns the cached table for a date, if present.
func (tc *TableCache) Get(date time.Time) (*table.Table, bool) {
	v, ok := tc.c.Get(key(date))
	if !ok {
		return nil, false
	}
	return v.(*table.Table), true
}

// Set stores the table for a date.
func (tc *TableCache) Set(date time.Time, t *table.Table) {
	tc.c.SetDefault(key(date), t)
}
