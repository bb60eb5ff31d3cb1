// store/store.go
package store

import (
	"github.com/alphazella/zella/ledger"
)

// Store is the persistence port for a ledger. The engine never assumes a
// particular backing; callers Save after every mutating operation when
// durability is wanted. Any locking or transaction discipline behind a shared
// backing belongs to the Store implementation, not the engine.
type Store interface {
	Load() ([]ledger.TradeRecord, error)
	Save([]ledger.TradeRecord) error
	Close() error
}
