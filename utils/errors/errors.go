package errors

import (
	stderrors "errors"

	"github.com/muhammadheryan/food-delivery/constant"
)

type CustomError struct {
	errType constant.ErrorType
	message string
	fields  map[string]string
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

// Fields holds per-field messages for validation failures.
func (c CustomError) Fields() map[string]string {
	return c.fields
}

// WithMessage replaces the default message, typically with the one sent by the marketplace.
func (c CustomError) WithMessage(msg string) CustomError {
	c.message = msg
	return c
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

func SetValidationError(fields map[string]string) CustomError {
	return CustomError{
		errType: constant.ErrValidation,
		fields:  fields,
	}
}

// Is reports whether err is a CustomError of the given type.
func Is(err error, errorType constant.ErrorType) bool {
	var ce CustomError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.errType == errorType
}
