package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/vmhub/videomakers-backend/internal/logger"
)

// SafeGo executa a função numa goroutine com recuperação de panic.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger.Log != nil {
					logger.Log.Errorf("panic em goroutine: %v\n%s", r, debug.Stack())
				}
			}
		}()
		fn()
	}()
}

// SafeGoWithContext executa a função com contexto numa goroutine com recuperação de panic.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger.Log != nil {
					logger.Log.Errorf("panic em goroutine (com contexto): %v\n%s", r, debug.Stack())
				}
			}
		}()
		fn(ctx)
	}()
}
