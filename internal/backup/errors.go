package backup

import "fmt"

// NotFoundError indicates an operation that requires an existing backup was
// given an id that is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("backup %s does not exist", e.ID)
}

// ValidationError indicates an import file that does not hold a usable
// backup: unparsable JSON, an unknown format version, or records that break
// the snapshot invariants.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid backup file: %s", e.Reason)
}
