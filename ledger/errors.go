// ledger/errors.go
package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an id that is not in
// the ledger.
var ErrNotFound = errors.New("trade not found")

// MalformedInputError reports a raw row that could not be normalized into a
// TradeRecord. Ingest recovers from it locally: the row is skipped and
// reported, the batch continues.
type MalformedInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed %s %q: %s", e.Field, e.Value, e.Reason)
}

func malformed(field, value, reason string) *MalformedInputError {
	return &MalformedInputError{Field: field, Value: value, Reason: reason}
}
