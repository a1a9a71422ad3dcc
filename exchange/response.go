package exchange

import "net/http"

//
// Response generically provides an interface to an object that represents a response from a call to
// an exchange's API endpoint.
//
type Response interface {

	//
	// Raw provides the raw HTTP response from the endpoint call that was made. Its body has already
	// been consumed and closed.
	//
	Raw() *http.Response

	//
	// Body provides the meaningful JSON payload of the response. For endpoints that wrap their
	// results in an envelope this is only the unwrapped result.
	//
	Body() []byte

	//
	// Decode unmarshals the payload returned by Body into the provided value. A failure is always
	// reported as a *DecodeError.
	//
	Decode(v interface{}) error
}
