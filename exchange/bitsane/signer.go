package bitsane

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

//
// buildPayload serializes the provided parameters plus the nonce into a JSON object and returns its
// base64 encoding, which is both the request body and the value that gets signed.
//
// NOTE ~> The parameters are first marshalled on their own and then re-read into a map so that the
//  nonce can be merged in. Go marshals maps with sorted keys, so the resulting JSON text is
//  canonical for a given parameter set and nonce.
//
func buildPayload(params interface{}, nonce int64) (string, error) {
	fields := map[string]json.RawMessage{}

	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return "", fmt.Errorf("failed to marshal parameters: %w", err)
		}

		if err := json.Unmarshal(raw, &fields); err != nil {
			return "", fmt.Errorf("parameters must marshal to a JSON object: %w", err)
		}
	}

	fields[NonceField] = json.RawMessage(strconv.FormatInt(nonce, 10))

	text, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	return base64.StdEncoding.EncodeToString(text), nil
}

//
// sign computes the lowercase hex HMAC-SHA384 of the payload keyed with the API secret.
//
func sign(payload string, secret string) string {
	mac := hmac.New(sha512.New384, []byte(secret))
	mac.Write([]byte(payload))

	return hex.EncodeToString(mac.Sum(nil))
}
