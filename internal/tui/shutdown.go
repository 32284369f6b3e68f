package tui

import (
	"context"
	"os"
	"sync"
	"time"
)

// ShutdownManager runs the teardown steps once, whichever of the window
// close path or a termination signal gets there first.
type ShutdownManager struct {
	// Timeout bounds how long FlushLog may take.
	Timeout time.Duration

	// FlushLog flushes and closes the debug log, if any.
	FlushLog func(ctx context.Context) error

	// Cleanup performs any additional cleanup.
	Cleanup func()

	once sync.Once
	err  error
}

// NewShutdownManager creates a ShutdownManager with a 2-second timeout.
func NewShutdownManager() *ShutdownManager {
	return &ShutdownManager{
		Timeout: 2 * time.Second,
	}
}

// Shutdown flushes the debug log then runs cleanup. Later calls return the
// result of the first.
func (sm *ShutdownManager) Shutdown() error {
	sm.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sm.Timeout)
		defer cancel()

		if sm.FlushLog != nil {
			sm.err = sm.FlushLog(ctx)
		}

		if sm.Cleanup != nil {
			sm.Cleanup()
		}
	})
	return sm.err
}

// QuitOnSignal calls quit when a signal arrives on sigCh, or returns when
// ctx is done. It does no teardown itself: signals skip the unsaved-events
// prompt, and the caller runs Shutdown once the program has stopped so the
// debug log is never closed under the UI goroutine.
func QuitOnSignal(ctx context.Context, sigCh <-chan os.Signal, quit func()) {
	select {
	case <-sigCh:
		quit()
	case <-ctx.Done():
	}
}
