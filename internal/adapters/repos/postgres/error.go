package postgres

import "errors"

var (
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrNilFunc        = errors.New("function cannot be nil")
)
