package bitsane

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/klauspost/compress/gzip"
	"github.com/lukehollenback/bitsane/exchange"
	"github.com/rs/zerolog"
	"moul.io/http2curl"
)

//
// Client implements the exchange.Client interface for the Bitsane API.
//
// A Client keeps no per-call state. API errors are returned to the caller instead of being stashed
// on the client, so one instance may be shared between goroutines.
//
type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	nonce      NonceFunc
}

// redacted replaces secrets in trace output.
const redacted = "REDACTED"

//
// Option configures optional client behavior.
//
type Option func(*Client)

//
// WithBaseURL overrides the API root (everything before "/public/" or "/private/").
//
func WithBaseURL(baseURL string) Option {
	return func(o *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			o.baseURL = trimmed
		}
	}
}

//
// WithHTTPClient overrides the default HTTP client.
//
func WithHTTPClient(client *http.Client) Option {
	return func(o *Client) {
		if client != nil {
			o.httpClient = client
		}
	}
}

//
// WithLogger attaches a logger. Requests are logged at debug level and, at trace level, as an
// equivalent curl command with credentials redacted.
//
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Client) {
		o.logger = logger
	}
}

//
// WithNonce overrides the nonce source used for private requests.
//
func WithNonce(nonce NonceFunc) Option {
	return func(o *Client) {
		if nonce != nil {
			o.nonce = nonce
		}
	}
}

//
// NewClient builds a client for the provided API key and secret. Both may be empty if only public
// endpoints will be used. The secret is only ever used to compute signatures; it is never sent.
//
func NewClient(key string, secret string, opts ...Option) *Client {
	o := &Client{
		apiKey:     key,
		apiSecret:  secret,
		baseURL:    BaseURL,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
		nonce:      MicrosecondNonce(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return o
}

//
// public issues an unauthenticated GET against the provided public endpoint. The parameters (if any)
// must be a struct tagged for go-querystring; they are encoded into the query string.
//
func (o *Client) public(ctx context.Context, endpoint string, params interface{}) (*Response, error) {
	//
	// Build request URL.
	//
	url := o.baseURL + PublicPath + endpoint

	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return nil, &exchange.RequestError{Endpoint: endpoint, Err: err}
		}

		if len(values) > 0 {
			url += "?" + values.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &exchange.RequestError{Endpoint: endpoint, Err: err}
	}

	//
	// Make the endpoint request and handle any errors along the way.
	//
	resp, body, err := o.do(req, endpoint, nil)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, &exchange.DecodeError{Endpoint: endpoint, Err: errors.New("response body is not valid JSON")}
	}

	return &Response{response: resp, endpoint: endpoint, body: body}, nil
}

//
// private issues a signed POST against the provided private endpoint and unwraps the response
// envelope. The parameters (if any) must marshal to a JSON object.
//
func (o *Client) private(ctx context.Context, endpoint string, params interface{}) (*Response, error) {
	//
	// Build and sign the payload.
	//
	payload, err := buildPayload(params, o.nonce())
	if err != nil {
		return nil, &exchange.RequestError{Endpoint: endpoint, Err: err}
	}

	signature := sign(payload, o.apiSecret)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, o.baseURL+PrivatePath+endpoint, strings.NewReader(payload),
	)
	if err != nil {
		return nil, &exchange.RequestError{Endpoint: endpoint, Err: err}
	}

	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set(APIKeyHeader, o.apiKey)
	req.Header.Set(PayloadHeader, payload)
	req.Header.Set(SignatureHeader, signature)

	//
	// Make the endpoint request and handle any errors along the way.
	//
	resp, body, err := o.do(req, endpoint, []byte(payload))
	if err != nil {
		return nil, err
	}

	//
	// Unwrap the envelope.
	//
	var env Envelope

	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &exchange.DecodeError{Endpoint: endpoint, Err: err}
	}

	if env.StatusCode == nil {
		return nil, &exchange.DecodeError{Endpoint: endpoint, Err: errors.New("envelope is missing statusCode")}
	}

	if *env.StatusCode != 0 {
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: *env.StatusCode,
			StatusText: env.StatusText,
		}
	}

	return &Response{response: resp, endpoint: endpoint, body: env.Result}, nil
}

//
// do performs the request, enforces a 200 status and returns the (decompressed) body. The raw body
// bytes are only needed to render the trace-level curl command.
//
func (o *Client) do(req *http.Request, endpoint string, rawBody []byte) (*http.Response, []byte, error) {
	//
	// Ask for compression explicitly. Because we set the header ourselves the transport will not
	// decompress on our behalf, which is what readBody is for.
	//
	req.Header.Set("Accept-Encoding", "gzip")

	o.traceCurl(req, rawBody)

	//
	// Make a request to the endpoint.
	//
	start := time.Now()

	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.logger.Debug().Err(err).Str("method", req.Method).Str("endpoint", endpoint).Msg("bitsane request failed")

		return nil, nil, &exchange.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	o.logger.Debug().
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("bitsane request completed")

	//
	// Make sure the status code was valid.
	//
	if resp.StatusCode != http.StatusOK {
		return nil, nil, exchange.NewHTTPError(resp.StatusCode)
	}

	body, err := readBody(resp, endpoint)
	if err != nil {
		return nil, nil, err
	}

	return resp, body, nil
}

//
// readBody reads the full response body, transparently gunzipping it when the server says it is
// gzip-encoded.
//
func readBody(resp *http.Response, endpoint string) ([]byte, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &exchange.TransportError{Endpoint: endpoint, Err: err}
	}

	if !strings.Contains(strings.ToLower(resp.Header.Get("Content-Encoding")), "gzip") {
		return raw, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &exchange.DecodeError{Endpoint: endpoint, Err: err}
	}
	defer zr.Close()

	body, err := io.ReadAll(zr)
	if err != nil {
		return nil, &exchange.DecodeError{Endpoint: endpoint, Err: err}
	}

	return body, nil
}

//
// traceCurl logs the request as a curl command. The API key, payload and signature are redacted
// wherever they appear, so the command shows the shape of the call but cannot be replayed.
//
func (o *Client) traceCurl(req *http.Request, rawBody []byte) {
	event := o.logger.Trace()
	if !event.Enabled() {
		return
	}

	//
	// NOTE ~> http2curl consumes the body of the request it is given, so it works on a clone. The
	//  private body is the payload itself and is swapped for the redaction marker. Bodiless requests
	//  keep a nil body so no empty "-d" is rendered.
	//
	clone := req.Clone(req.Context())

	if rawBody != nil {
		clone.Body = io.NopCloser(strings.NewReader(redacted))
	}

	for _, header := range []string{APIKeyHeader, PayloadHeader, SignatureHeader} {
		if clone.Header.Get(header) != "" {
			clone.Header.Set(header, redacted)
		}
	}

	cmd, err := http2curl.GetCurlCommand(clone)
	if err != nil {
		event.Err(err).Msg("failed to render curl command")
		return
	}

	event.Str("curl", cmd.String()).Msg("bitsane request")
}
