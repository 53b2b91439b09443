// Package goroutine launches goroutines that log panics instead of crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. A panic is recovered and logged with
// its stack, then onPanic (if non-nil) receives it as an error.
func SafeGo(log logger.Interface, name string, fn func(), onPanic func(error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				if onPanic != nil {
					onPanic(fmt.Errorf("goroutine %s panicked: %v", name, r))
				}
			}
		}()
		fn()
	}()
}
