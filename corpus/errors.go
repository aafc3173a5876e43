package corpus

import "errors"

var (
	ErrSeedTooLarge = errors.New("corpus: seed exceeds MaxSeedSize")
	ErrInvalidID    = errors.New("corpus: malformed seed id")
	ErrRejected     = errors.New("corpus: provider rejected write")
)
