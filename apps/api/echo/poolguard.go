package echoapi

import (
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"
)

// newPoolGuard bounds the handlers running at once to maxInFlight.
// Up to maxQueue requests wait for a slot; the next ones are rejected with 503.
func newPoolGuard(maxInFlight, maxQueue int) echo.MiddlewareFunc {
	if maxInFlight <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	sem := semaphore.NewWeighted(int64(maxInFlight))
	var waiting int64

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !sem.TryAcquire(1) {
				if atomic.AddInt64(&waiting, 1) > int64(maxQueue) {
					atomic.AddInt64(&waiting, -1)
					return errServiceUnavailable
				}
				err := sem.Acquire(ctx.Request().Context(), 1)
				atomic.AddInt64(&waiting, -1)
				if err != nil {
					return errServiceUnavailable
				}
			}
			defer sem.Release(1)
			return next(ctx)
		}
	}
}
