package errorx

import "fmt"

// Wrap annotates err with the operation that produced it. Nil stays nil so
// call sites can wrap unconditionally.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
