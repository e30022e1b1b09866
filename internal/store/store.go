package store

import "time"

// Store keeps raw fetched payloads so a restart (or an offline run)
// does not have to hit the JSDA site again for dates it has already
// seen. It sits behind the in-memory session cache and in front of
// the network; the pipeline itself stays stateless.
type Store interface {
	GetPayload(date time.Time) ([]byte, bool, error)
	PutPayload(date time.Time, payload []byte) error
	Close() error
}
