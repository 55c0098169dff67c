// Package goroutine guards concurrent work against panics.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

// Run calls fn and turns a panic into an internal error, logging the
// stack trace, so one failing unit of work cannot take the process down.
func Run(log logger.Interface, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = errors.NewInternalError("unexpected failure in "+name, fmt.Sprintf("%v", r))
		}
	}()
	return fn()
}
