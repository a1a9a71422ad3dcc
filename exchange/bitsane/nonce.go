package bitsane

import (
	"sync/atomic"
	"time"
)

//
// NonceFunc produces the nonce attached to each private request. Successive values handed to the
// same client must be strictly increasing.
//
type NonceFunc func() int64

//
// MicrosecondNonce returns a NonceFunc based on the current time in microseconds. If two calls land
// on the same microsecond (or the clock steps backwards) the previous value is bumped by one, so the
// sequence never repeats.
//
func MicrosecondNonce() NonceFunc {
	var last int64

	return func() int64 {
		for {
			prev := atomic.LoadInt64(&last)

			next := time.Now().UnixMicro()
			if next <= prev {
				next = prev + 1
			}

			if atomic.CompareAndSwapInt64(&last, prev, next) {
				return next
			}
		}
	}
}

//
// FixedNonce returns a NonceFunc that always yields n. It exists for reproducing signatures and is not
// suitable for talking to the live API.
//
func FixedNonce(n int64) NonceFunc {
	return func() int64 {
		return n
	}
}
