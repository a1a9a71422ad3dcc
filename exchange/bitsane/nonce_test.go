package bitsane

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicrosecondNonceIsStrictlyIncreasing(t *testing.T) {
	nonce := MicrosecondNonce()
	before := time.Now().UnixMicro()

	prev := nonce()
	assert.GreaterOrEqual(t, prev, before)

	for i := 0; i < 10000; i++ {
		next := nonce()
		require.Greater(t, next, prev)

		prev = next
	}
}

func TestMicrosecondNonceNeverRepeatsAcrossGoroutines(t *testing.T) {
	nonce := MicrosecondNonce()

	var mu sync.Mutex
	var wg sync.WaitGroup

	seen := make(map[int64]bool)

	for g := 0; g < 8; g++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < 500; i++ {
				n := nonce()

				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Len(t, seen, 8*500)
}

func TestFixedNonce(t *testing.T) {
	nonce := FixedNonce(99)

	assert.Equal(t, int64(99), nonce())
	assert.Equal(t, int64(99), nonce())
}
