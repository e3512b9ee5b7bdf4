package errorx

import (
	"errors"
)

// Persistable marks an error that must still reach the caller while the
// state and events recorded so far are committed instead of rolled back.
// postgres.WithTx and the repository update closures honor it.
type Persistable struct {
	Err error
}

func (e *Persistable) Error() string { return e.Err.Error() }
func (e *Persistable) Unwrap() error { return e.Err }

func NewPersistable(err error) *Persistable {
	if err == nil {
		return nil
	}
	return &Persistable{Err: err}
}

func IsPersistable(err error) bool {
	if err == nil {
		return false
	}

	var persistable *Persistable
	return errors.As(err, &persistable)
}
