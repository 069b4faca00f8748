package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrValidation
	ErrEmptyCart
	ErrInvalidItem
	ErrOutOfStock
	ErrInvalidReason
	ErrInvalidOrderStatus
	ErrPaymentGateway
	ErrPaymentFailed
	ErrAlreadyDecided
	ErrDecisionConflict
	ErrUpstream
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrForbidden:          "forbidden request",
	ErrValidation:         "please correct the highlighted fields",
	ErrEmptyCart:          "your cart is empty",
	ErrInvalidItem:        "menu item does not exist",
	ErrOutOfStock:         "requested quantity exceeds available stock",
	ErrInvalidReason:      "a reason is required",
	ErrInvalidOrderStatus: "action not allowed for the current order status",
	ErrPaymentGateway:     "payment service could not be initialized, please try again later",
	ErrPaymentFailed:      "payment failed, please try again",
	ErrAlreadyDecided:     "verification already has this decision",
	ErrDecisionConflict:   "verification was changed by another admin, reload and retry",
	ErrUpstream:           "something went wrong, please try again",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrValidation:         http.StatusUnprocessableEntity,
	ErrEmptyCart:          http.StatusBadRequest,
	ErrInvalidItem:        http.StatusNotFound,
	ErrOutOfStock:         http.StatusConflict,
	ErrInvalidReason:      http.StatusBadRequest,
	ErrInvalidOrderStatus: http.StatusConflict,
	ErrPaymentGateway:     http.StatusServiceUnavailable,
	ErrPaymentFailed:      http.StatusBadGateway,
	ErrAlreadyDecided:     http.StatusConflict,
	ErrDecisionConflict:   http.StatusConflict,
	ErrUpstream:           http.StatusBadGateway,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrForbidden:          "0005",
	ErrValidation:         "0006",
	ErrEmptyCart:          "0007",
	ErrInvalidItem:        "0008",
	ErrOutOfStock:         "0009",
	ErrInvalidReason:      "0010",
	ErrInvalidOrderStatus: "0011",
	ErrPaymentGateway:     "0012",
	ErrPaymentFailed:      "0013",
	ErrAlreadyDecided:     "0014",
	ErrDecisionConflict:   "0015",
	ErrUpstream:           "0016",
}

// LoginRoute is where clients are sent after a 401.
const LoginRoute = "/login"
