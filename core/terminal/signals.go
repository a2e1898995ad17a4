package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// InstallSignalHandlers keeps SIGINT and SIGQUIT from terminating the shell.
// The signals are caught rather than ignored, so child processes still start
// with the default handlers. Call the returned function to undo it.
func InstallSignalHandlers() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

// InterruptContext returns a context cancelled by the next SIGINT. It scopes
// an interruptible operation such as reading a heredoc body.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT)
}
