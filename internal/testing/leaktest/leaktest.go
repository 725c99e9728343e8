// Package leaktest detects goroutines left running by a test.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleInterval = 10 * time.Millisecond
	settleTimeout  = 2 * time.Second
)

// Check records the goroutine count and returns a func that fails t if,
// after a grace period, more than tolerance extra goroutines are still alive.
//
//	defer leaktest.Check(t, 0)()
func Check(t testing.TB, tolerance int) func() {
	t.Helper()
	before := count()

	return func() {
		t.Helper()
		deadline := time.Now().Add(settleTimeout)
		after := count()
		for after-before > tolerance && time.Now().Before(deadline) {
			time.Sleep(settleInterval)
			after = count()
		}
		if leaked := after - before; leaked > tolerance {
			t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d", before, after, leaked, tolerance)
		}
	}
}

func count() int {
	runtime.Gosched()
	runtime.GC()
	return runtime.NumGoroutine()
}
