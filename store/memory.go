// store/memory.go
package store

import (
	"github.com/alphazella/zella/ledger"
)

// MemoryStore is a session-scoped backing: the ledger lives only as long as
// the process. Useful for tests and for running the dashboard without
// durability.
type MemoryStore struct {
	recs []ledger.TradeRecord
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]ledger.TradeRecord, error) {
	out := make([]ledger.TradeRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

func (s *MemoryStore) Save(recs []ledger.TradeRecord) error {
	s.recs = make([]ledger.TradeRecord, len(recs))
	copy(s.recs, recs)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
