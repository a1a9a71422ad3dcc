package bitsane

import (
	"encoding/json"
	"net/http"

	"github.com/lukehollenback/bitsane/exchange"
)

//
// Response implements the exchange.Response interface for wrapped responses from the Bitsane API.
// For private endpoints the body holds only the envelope's result field.
//
type Response struct {
	response *http.Response
	endpoint string
	body     []byte
}

func (o *Response) Raw() *http.Response {
	return o.response
}

func (o *Response) Body() []byte {
	return o.body
}

func (o *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(o.body, v); err != nil {
		return &exchange.DecodeError{Endpoint: o.endpoint, Err: err}
	}

	return nil
}

//
// Envelope is the outer structure every private endpoint wraps its payload in. StatusCode is a
// pointer so that a missing field can be told apart from a successful zero.
//
type Envelope struct {
	StatusCode *int            `json:"statusCode"`
	StatusText string          `json:"statusText"`
	Result     json.RawMessage `json:"result"`
}
