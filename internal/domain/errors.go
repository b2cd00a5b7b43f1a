package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// resource (a document, a line key, a person) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. absence without a person, reservation dated before
// the operating date). Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")
