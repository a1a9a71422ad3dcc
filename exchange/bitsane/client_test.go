package bitsane

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/lukehollenback/bitsane/exchange"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "test-key"
	testSecret = "test-secret"
	testNonce  = int64(1700000000000000)
)

//
// newTestClient spins up an httptest server backed by the provided handler and a client pointed at
// it with a fixed nonce.
//
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(testKey, testSecret, WithBaseURL(srv.URL), WithNonce(FixedNonce(testNonce)))
}

//
// readPayload reads a private request body, checks it against the payload header and returns the
// decoded parameter set.
//
func readPayload(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.Equal(t, string(body), r.Header.Get(PayloadHeader))

	text, err := base64.StdEncoding.DecodeString(string(body))
	require.NoError(t, err)

	params := map[string]interface{}{}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&params))

	return params
}

func writeEnvelope(w http.ResponseWriter, result string) {
	_, _ = io.WriteString(w, `{"statusCode":0,"statusText":"Success","result":`+result+`}`)
}

func TestPublicRequestCarriesNoCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/public/orderbook", r.URL.Path)
		assert.Equal(t, "BTC_EUR", r.URL.Query().Get("pair"))
		assert.Equal(t, "10", r.URL.Query().Get("limit_bids"))
		assert.Equal(t, "50", r.URL.Query().Get("limit_asks"))
		assert.Empty(t, r.URL.Query().Get(NonceField))
		assert.Empty(t, r.Header.Get(APIKeyHeader))
		assert.Empty(t, r.Header.Get(PayloadHeader))
		assert.Empty(t, r.Header.Get(SignatureHeader))

		_, _ = io.WriteString(w, `{"asks":[],"bids":[{"price":"1","amount":"2"}]}`)
	})

	resp, err := client.OrderBook(context.Background(), "BTC_EUR", exchange.Int(10), nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"asks":[],"bids":[{"price":"1","amount":"2"}]}`, string(resp.Body()))
	assert.Equal(t, http.StatusOK, resp.Raw().StatusCode)
}

func TestPublicRequestWithoutParamsHasNoQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/ticker", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)

		_, _ = io.WriteString(w, `{}`)
	})

	_, err := client.Ticker(context.Background())
	require.NoError(t, err)
}

func TestTickerJoinsPairs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BTC_EUR,ETH_EUR", r.URL.Query().Get("pairs"))

		_, _ = io.WriteString(w, `{"BTC_EUR":{"last":"1"}}`)
	})

	resp, err := client.Ticker(context.Background(), "BTC_EUR", "ETH_EUR")
	require.NoError(t, err)

	var ticker map[string]map[string]string
	require.NoError(t, resp.Decode(&ticker))
	assert.Equal(t, "1", ticker["BTC_EUR"]["last"])
}

func TestTradesDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/trades", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("since"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		_, _ = io.WriteString(w, `[]`)
	})

	_, err := client.Trades(context.Background(), "BTC_EUR", nil, nil)
	require.NoError(t, err)
}

func TestExplicitZeroIsSentAsZero(t *testing.T) {
	var queries []map[string][]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query())

		_, _ = io.WriteString(w, `[]`)
	})

	_, err := client.OrderBook(context.Background(), "BTC_EUR", exchange.Int(0), exchange.Int(0))
	require.NoError(t, err)

	_, err = client.Trades(context.Background(), "BTC_EUR", exchange.Int64(0), exchange.Int(0))
	require.NoError(t, err)

	require.Len(t, queries, 2)
	assert.Equal(t, []string{"0"}, queries[0]["limit_bids"])
	assert.Equal(t, []string{"0"}, queries[0]["limit_asks"])
	assert.Equal(t, []string{"0"}, queries[1]["since"])
	assert.Equal(t, []string{"0"}, queries[1]["limit"])
}

func TestPrivateRequestIsSigned(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/private/deposit/address", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, testKey, r.Header.Get(APIKeyHeader))

		payload := r.Header.Get(PayloadHeader)

		mac := hmac.New(sha512.New384, []byte(testSecret))
		mac.Write([]byte(payload))
		assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), r.Header.Get(SignatureHeader))

		params := readPayload(t, r)
		assert.Equal(t, "BTC", params["currency"])
		assert.Equal(t, json.Number("1700000000000000"), params[NonceField])

		writeEnvelope(w, `{"address":"1abc"}`)
	})

	resp, err := client.DepositAddress(context.Background(), "BTC")
	require.NoError(t, err)

	assert.JSONEq(t, `{"address":"1abc"}`, string(resp.Body()))
}

func TestPrivateRequestNeverSendsTheSecret(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		for name, values := range r.Header {
			for _, v := range values {
				assert.NotContains(t, v, testSecret, "header %s leaked the secret", name)
			}
		}

		body, _ := io.ReadAll(r.Body)
		assert.NotContains(t, string(body), testSecret)

		writeEnvelope(w, `[]`)
	})

	_, err := client.Balances(context.Background())
	require.NoError(t, err)
}

func TestPrivateAPIErrorIsReturned(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"statusCode":5,"statusText":"bad nonce"}`)
	})

	resp, err := client.Balances(context.Background())
	require.Error(t, err)
	assert.Nil(t, resp)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 5, apiErr.Code())
	assert.Equal(t, "bad nonce", apiErr.Message())
	assert.Equal(t, BalancesEndpoint, apiErr.Endpoint)

	var generic exchange.APIError
	assert.True(t, errors.As(err, &generic))

	var httpErr *exchange.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestPrivateSuccessAfterErrorIsUnaffected(t *testing.T) {
	calls := 0

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++

		if calls == 1 {
			_, _ = io.WriteString(w, `{"statusCode":3,"statusText":"nope"}`)
			return
		}

		writeEnvelope(w, `{"ok":true}`)
	})

	_, err := client.Orders(context.Background())
	require.Error(t, err)

	resp, err := client.Orders(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body()))
}

func TestHTTPErrorIsDistinctFromAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{"statusCode":5,"statusText":"bad nonce"}`)
	})

	for _, call := range []func() (exchange.Response, error){
		func() (exchange.Response, error) { return client.Balances(context.Background()) },
		func() (exchange.Response, error) { return client.Pairs(context.Background()) },
	} {
		resp, err := call()
		require.Error(t, err)
		assert.Nil(t, resp)

		var httpErr *exchange.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode())

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(testKey, testSecret, WithBaseURL(srv.URL))

	_, err := client.Currencies(context.Background())
	require.Error(t, err)

	var transportErr *exchange.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, CurrenciesEndpoint, transportErr.Endpoint)

	var httpErr *exchange.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestCancelledContextIsATransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Vouchers(ctx)

	var transportErr *exchange.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestUnbuildableRequestIsARequestError(t *testing.T) {
	client := NewClient(testKey, testSecret, WithBaseURL("http://[::1"))

	for name, call := range map[string]func() (exchange.Response, error){
		"public":  func() (exchange.Response, error) { return client.Pairs(context.Background()) },
		"private": func() (exchange.Response, error) { return client.Balances(context.Background()) },
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := call()
			require.Error(t, err)
			assert.Nil(t, resp)

			var requestErr *exchange.RequestError
			require.True(t, errors.As(err, &requestErr))

			var transportErr *exchange.TransportError
			assert.False(t, errors.As(err, &transportErr))
		})
	}
}

func TestGzipResponsesAreDecompressed(t *testing.T) {
	gzipped := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Encoding", "gzip")

		zw := gzip.NewWriter(w)
		_, _ = io.WriteString(zw, body)
		_ = zw.Close()
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		if r.URL.Path == "/public/assets/currencies" {
			gzipped(w, `[{"currency":"BTC"}]`)
			return
		}

		gzipped(w, `{"statusCode":0,"result":{"BTC":"1.0"}}`)
	})

	resp, err := client.Currencies(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"currency":"BTC"}]`, string(resp.Body()))

	resp, err = client.Balances(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"BTC":"1.0"}`, string(resp.Body()))
}

func TestCorruptGzipIsADecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = io.WriteString(w, `{"not":"gzip"}`)
	})

	_, err := client.Pairs(context.Background())

	var decodeErr *exchange.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestMalformedBodiesAreDecodeErrors(t *testing.T) {
	for name, body := range map[string]string{
		"garbage":        `<html>oops</html>`,
		"truncated":      `{"statusCode":0,`,
		"no status code": `{"result":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})

			_, err := client.Orders(context.Background())
			require.Error(t, err)

			var decodeErr *exchange.DecodeError
			assert.True(t, errors.As(err, &decodeErr))

			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr))
		})
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"asks":`)
	})

	_, err := client.OrderBook(context.Background(), "BTC_EUR", nil, nil)

	var decodeErr *exchange.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestDecodeIntoWrongTypeIsADecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, `[1,2,3]`)
	})

	resp, err := client.Vouchers(context.Background())
	require.NoError(t, err)

	var out map[string]string
	err = resp.Decode(&out)

	var decodeErr *exchange.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, VouchersEndpoint, decodeErr.Endpoint)
}

func TestOptionalParametersAreOmittedUnlessSupplied(t *testing.T) {
	var params map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		params = readPayload(t, r)
		writeEnvelope(w, `[]`)
	})

	ctx := context.Background()

	_, err := client.TransactionsHistory(ctx, "BTC", exchange.HistoryRange{Since: 10})
	require.NoError(t, err)
	assert.NotContains(t, params, "until")
	assert.NotContains(t, params, "limit")

	_, err = client.TransactionsHistory(ctx, "BTC", exchange.HistoryRange{
		Since: 10,
		Until: exchange.Int64(20),
		Limit: exchange.Int(5),
	})
	require.NoError(t, err)
	assert.Equal(t, json.Number("20"), params["until"])
	assert.Equal(t, json.Number("5"), params["limit"])

	_, err = client.OrdersHistory(ctx, "BTC_EUR", exchange.HistoryRange{Since: 1}, nil)
	require.NoError(t, err)
	assert.NotContains(t, params, "until")
	assert.NotContains(t, params, "limit")
	assert.NotContains(t, params, "reverse")

	_, err = client.OrdersHistory(ctx, "BTC_EUR", exchange.HistoryRange{Since: 1}, exchange.Bool(false))
	require.NoError(t, err)
	assert.Equal(t, false, params["reverse"])

	_, err = client.Withdraw(ctx, "XRP", decimal.RequireFromString("10"), "rAddr", nil)
	require.NoError(t, err)
	assert.NotContains(t, params, "additional")

	_, err = client.Withdraw(ctx, "XRP", decimal.RequireFromString("10"), "rAddr", exchange.String("12345"))
	require.NoError(t, err)
	assert.Equal(t, "12345", params["additional"])
	assert.Equal(t, "10", params["amount"])
}

func TestOrderNewDefaults(t *testing.T) {
	var params map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/private/order/new", r.URL.Path)

		params = readPayload(t, r)
		writeEnvelope(w, `{"order_id":"77"}`)
	})

	resp, err := client.OrderNew(context.Background(), exchange.NewOrder{
		Pair:   "BTC_EUR",
		Amount: decimal.RequireFromString("0.5"),
		Price:  decimal.RequireFromString("9000.10"),
		Side:   exchange.Buy,
	})
	require.NoError(t, err)

	assert.Equal(t, "BTC_EUR", params["pair"])
	assert.Equal(t, "0.5", params["amount"])
	assert.Equal(t, "9000.1", params["price"])
	assert.Equal(t, "buy", params["side"])
	assert.Equal(t, "limit", params["type"])
	assert.Equal(t, false, params["hidden"])
	assert.JSONEq(t, `{"order_id":"77"}`, string(resp.Body()))
}

func TestWithdrawalStatusUsesWithdrawalIDKey(t *testing.T) {
	var params map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		params = readPayload(t, r)
		writeEnvelope(w, `{}`)
	})

	_, err := client.WithdrawalStatus(context.Background(), "w-1")
	require.NoError(t, err)

	assert.Equal(t, "w-1", params["withdrawal_id"])
	assert.Len(t, params, 2)
}

func TestEndpointRouting(t *testing.T) {
	ctx := context.Background()
	one := decimal.NewFromInt(1)

	cases := []struct {
		path   string
		method string
		call   func(c *Client) (exchange.Response, error)
	}{
		{"/public/ticker", http.MethodGet, func(c *Client) (exchange.Response, error) { return c.Ticker(ctx) }},
		{"/public/orderbook", http.MethodGet, func(c *Client) (exchange.Response, error) { return c.OrderBook(ctx, "A_B", nil, nil) }},
		{"/public/trades", http.MethodGet, func(c *Client) (exchange.Response, error) { return c.Trades(ctx, "A_B", nil, nil) }},
		{"/public/assets/currencies", http.MethodGet, func(c *Client) (exchange.Response, error) { return c.Currencies(ctx) }},
		{"/public/assets/pairs", http.MethodGet, func(c *Client) (exchange.Response, error) { return c.Pairs(ctx) }},
		{"/private/balances", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.Balances(ctx) }},
		{"/private/deposit/address", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.DepositAddress(ctx, "BTC") }},
		{"/private/transactions/history", http.MethodPost, func(c *Client) (exchange.Response, error) {
			return c.TransactionsHistory(ctx, "BTC", exchange.HistoryRange{})
		}},
		{"/private/vouchers", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.Vouchers(ctx) }},
		{"/private/vouchers/create", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.CreateVoucher(ctx, "BTC", one, "1") }},
		{"/private/vouchers/redeem", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.RedeemVoucher(ctx, "V", "1") }},
		{"/private/withdraw", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.Withdraw(ctx, "BTC", one, "addr", nil) }},
		{"/private/withdrawal/status", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.WithdrawalStatus(ctx, "1") }},
		{"/private/orders", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.Orders(ctx) }},
		{"/private/orders/history", http.MethodPost, func(c *Client) (exchange.Response, error) {
			return c.OrdersHistory(ctx, "A_B", exchange.HistoryRange{}, nil)
		}},
		{"/private/order/new", http.MethodPost, func(c *Client) (exchange.Response, error) {
			return c.OrderNew(ctx, exchange.NewOrder{Pair: "A_B", Amount: one, Price: one, Side: exchange.Sell, Type: exchange.Market})
		}},
		{"/private/order/status", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.OrderStatus(ctx, "1") }},
		{"/private/order/cancel", http.MethodPost, func(c *Client) (exchange.Response, error) { return c.OrderCancel(ctx, "1") }},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.path, r.URL.Path)
				assert.Equal(t, tc.method, r.Method)

				if tc.method == http.MethodPost {
					assert.NotEmpty(t, r.Header.Get(SignatureHeader))
					writeEnvelope(w, `{}`)
				} else {
					assert.Empty(t, r.Header.Get(SignatureHeader))
					_, _ = io.WriteString(w, `{}`)
				}
			})

			resp, err := tc.call(client)
			require.NoError(t, err)
			assert.JSONEq(t, `{}`, string(resp.Body()))
		})
	}
}

func TestWithBaseURLTrimsTrailingSlash(t *testing.T) {
	client := NewClient("", "", WithBaseURL("https://example.test/api/"))

	assert.Equal(t, "https://example.test/api", client.baseURL)

	client = NewClient("", "", WithBaseURL("   "))

	assert.Equal(t, BaseURL, client.baseURL)
}

func TestTraceLogRedactsCredentialsAndPayload(t *testing.T) {
	var (
		buf       bytes.Buffer
		payload   string
		signature string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := readPayload(t, r)
		assert.Equal(t, json.Number("1700000000000000"), params[NonceField])

		payload = r.Header.Get(PayloadHeader)
		signature = r.Header.Get(SignatureHeader)

		writeEnvelope(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(
		testKey, testSecret,
		WithBaseURL(srv.URL),
		WithNonce(FixedNonce(testNonce)),
		WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)),
	)

	_, err := client.Balances(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, payload)
	require.NotEmpty(t, signature)

	logged := buf.String()
	assert.Contains(t, logged, "curl")
	assert.Contains(t, logged, "REDACTED")
	assert.NotContains(t, logged, testKey)
	assert.NotContains(t, logged, testSecret)
	assert.NotContains(t, logged, signature)
	assert.NotContains(t, logged, payload)
}

func TestTraceLogOfBodilessRequestHasNoData(t *testing.T) {
	var buf bytes.Buffer

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient("", "", WithBaseURL(srv.URL), WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)))

	_, err := client.Currencies(context.Background())
	require.NoError(t, err)

	var curl string

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))

		if cmd, ok := entry["curl"].(string); ok {
			curl = cmd
		}
	}

	require.NotEmpty(t, curl)
	assert.Contains(t, curl, "GET")
	assert.Contains(t, curl, "/public/"+CurrenciesEndpoint)
	assert.NotContains(t, curl, "-d")
}
