package safego

import (
	"go.uber.org/zap"
)

// Go launches fn on a new goroutine with panic recovery. A panicking
// goroutine logs the panic value under the given name and exits instead of
// taking down the process. Ingestion readers and the demo director run under
// this wrapper; none of them are allowed to crash the render loop.
func Go(logger *zap.Logger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Goroutine panicked",
					zap.String("goroutine", name),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
			}
		}()
		fn()
	}()
}
