package models

// ErrorResponse is the generic non-2xx body: the UI shows Message in its
// error popup, falling back to its own text when Message is empty.
type ErrorResponse struct {
	Message string `json:"message" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:""`
}

// ValidationErrorResponse maps field name to message; returned with 400 and
// no storage touched.
type ValidationErrorResponse struct {
	Message string            `json:"message" example:"Validation failed"`
	Errors  map[string]string `json:"errors"`
}

type SuccessResponse struct {
	Message string `json:"message" example:"OK"`
}

// OrdersResponse wraps order listings; the client treats a missing orders
// array as a data-shape error and renders an empty view.
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

// QuotesResponse wraps quote listings for one order.
type QuotesResponse struct {
	Quotes []FreightQuote `json:"quotes"`
}
