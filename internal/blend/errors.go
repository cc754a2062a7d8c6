package blend

import "errors"

// ErrUnknownMode is returned by ParseMode when a wire mode code does not
// name a known blend mode.
var ErrUnknownMode = errors.New("blend: unknown mode")
