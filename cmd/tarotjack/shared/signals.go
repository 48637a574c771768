package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

// SetupSignalHandlerWithLogger returns a context cancelled on the
// first SIGINT or SIGTERM. After the first signal the default handler
// is restored, so a second signal force-quits a stuck shutdown.
func SetupSignalHandlerWithLogger(logger zerolog.Logger) context.Context {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ctx.Done()
		stop()
		logger.Info().Msg("Received shutdown signal, finishing up; repeat to force quit")
	}()

	return ctx
}
