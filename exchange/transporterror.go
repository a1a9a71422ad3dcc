package exchange

import "fmt"

//
// TransportError represents a request that never produced an HTTP response at all (e.g. a refused
// connection, a DNS failure, a cancelled context, or a body that could not be read off the wire).
//
type TransportError struct {
	Endpoint string
	Err      error
}

func (o *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %s", o.Endpoint, o.Err)
}

func (o *TransportError) Unwrap() error {
	return o.Err
}

//
// DecodeError represents a response that arrived intact but whose body could not be understood
// (malformed JSON, a corrupt gzip stream, or an envelope missing its required fields).
//
type DecodeError struct {
	Endpoint string
	Err      error
}

func (o *DecodeError) Error() string {
	if o.Endpoint == "" {
		return fmt.Sprintf("failed to decode response: %s", o.Err)
	}

	return fmt.Sprintf("failed to decode response from %s: %s", o.Endpoint, o.Err)
}

func (o *DecodeError) Unwrap() error {
	return o.Err
}

//
// RequestError represents a request that could not be built locally, before anything was sent
// (e.g. an unparseable base URL or parameters that do not encode).
//
type RequestError struct {
	Endpoint string
	Err      error
}

func (o *RequestError) Error() string {
	return fmt.Sprintf("failed to build request for %s: %s", o.Endpoint, o.Err)
}

func (o *RequestError) Unwrap() error {
	return o.Err
}
