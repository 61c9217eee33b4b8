package renderterm

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure surfaced by this package wraps one of
// these sentinels, so callers can classify with errors.Is without
// depending on subordinate error values.
var (
	// ErrInvalidArgument reports a bad parameter: nil backend handle,
	// out-of-range size, unparsable font data, out-of-bounds index.
	ErrInvalidArgument = errors.New("renderterm: invalid argument")

	// ErrMemory reports an allocation failure in a subordinate.
	ErrMemory = errors.New("renderterm: memory error")

	// ErrUnknown reports a subordinate failure that fits no other kind.
	ErrUnknown = errors.New("renderterm: unknown error")
)

// tagged reports whether err is already classified under the package
// taxonomy.
func tagged(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrMemory) ||
		errors.Is(err, ErrUnknown)
}

// fontError maps a font subsystem failure onto the package taxonomy.
// Missing files and unparsable font data are caller mistakes, so they
// classify as invalid argument.
func fontError(err error) error {
	if err == nil || tagged(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
}

// printerError maps a line printer or backend failure onto the package
// taxonomy.
func printerError(err error) error {
	if err == nil || tagged(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnknown, err)
}
