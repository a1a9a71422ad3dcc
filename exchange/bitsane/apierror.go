package bitsane

import "fmt"

//
// APIError implements the exchange.APIError interface for errors reported inside the Bitsane
// private response envelope (a non-zero statusCode).
//
type APIError struct {
	Endpoint   string
	StatusCode int
	StatusText string
}

func (o *APIError) Code() int {
	return o.StatusCode
}

func (o *APIError) Message() string {
	return o.StatusText
}

func (o *APIError) Error() string {
	return fmt.Sprintf(
		"the Bitsane %s endpoint returned an API error (code: %d, message: %s)",
		o.Endpoint, o.StatusCode, o.StatusText,
	)
}
