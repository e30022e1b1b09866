package source

import "time"

// MockFetcher returns a fixed payload for tests.
type MockFetcher struct {
	Payload []byte
	Err     error
	Calls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(_ time.Time) ([]byte, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payload, nil
}
