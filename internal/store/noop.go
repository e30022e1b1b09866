package store

import "time"

// NoopStore is used when no SQLite path is configured; every lookup
// misses and writes vanish.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) GetPayload(_ time.Time) ([]byte, bool, error) { return nil, false, nil }
func (n *NoopStore) PutPayload(_ time.Time, _ []byte) error       { return nil }
func (n *NoopStore) Close() error                                 { return nil }
