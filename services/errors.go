package services

import "errors"

// Domain errors returned by the service layer. Handlers translate these to
// HTTP status codes at the request boundary.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrPhaseClosed      = errors.New("contest phase does not permit this operation")
	ErrAlreadyEntered   = errors.New("author already has an entry in this contest")
	ErrIncompleteBallot = errors.New("ballot does not cover exactly the contest's entries")
	ErrInvalidScore     = errors.New("score must be an integer between 0 and 5")
	ErrNotVisible       = errors.New("not visible without the contest's private key")
)
