package marketplace

import (
	"context"
	"errors"
	"net/http"

	"github.com/muhammadheryan/food-delivery/constant"
	cerr "github.com/muhammadheryan/food-delivery/utils/errors"
)

var defaultErrorTypes = map[int]constant.ErrorType{
	http.StatusBadRequest:          constant.ErrInvalidRequest,
	http.StatusUnauthorized:        constant.ErrUnauthorize,
	http.StatusForbidden:           constant.ErrForbidden,
	http.StatusNotFound:            constant.ErrNotFound,
	http.StatusUnprocessableEntity: constant.ErrInvalidRequest,
}

// MapError converts a client error into a CustomError. overrides takes precedence over the
// default status mapping so a caller can say, e.g., that a 404 on add-to-cart means an unknown item.
// The marketplace message is kept when it sent one.
func MapError(err error, overrides map[int]constant.ErrorType) error {
	if err == nil {
		return nil
	}
	var ce cerr.CustomError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return cerr.SetCustomError(constant.ErrUpstream)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return cerr.SetCustomError(constant.ErrUpstream)
	}

	errType, ok := overrides[apiErr.StatusCode]
	if !ok {
		errType, ok = defaultErrorTypes[apiErr.StatusCode]
	}
	if !ok {
		errType = constant.ErrUpstream
	}

	out := cerr.SetCustomError(errType)
	if apiErr.Message != "" && errType != constant.ErrUnauthorize {
		out = out.WithMessage(apiErr.Message)
	}
	return out
}
