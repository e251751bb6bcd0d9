// Package timing holds call-rate helpers shared by the web handlers and services.
package timing

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle returns a function that calls fn at most once per window: the first
// call fires immediately and later calls inside the window are dropped.
// The returned function reports whether fn ran. Safe for concurrent use.
func Throttle(fn func(), window time.Duration) func() bool {
	lim := rate.NewLimiter(rate.Every(window), 1)
	return func() bool {
		if !lim.Allow() {
			return false
		}
		fn()
		return true
	}
}
