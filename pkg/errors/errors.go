// ================== pkg/errors/errors.go =================
package errors

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
	ErrValidation   = errors.New("validation failed")

	// Moderation rejections. Expected business outcomes, not failures -
	// handlers map these to success=false responses with zero side effects.
	ErrDuplicateReport = errors.New("report already submitted for this post")
	ErrSelfReport      = errors.New("cannot report your own post")
)
