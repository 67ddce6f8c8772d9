package auth

import "errors"

// ErrInvalidToken is returned for every token that fails validation:
// malformed, bad signature, wrong algorithm, expired or missing subject.
// Callers cannot tell these apart.
var ErrInvalidToken = errors.New("invalid authentication token")
