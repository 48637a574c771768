package shared

import (
	"io"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSignalHandlerCancelsOnSigterm(t *testing.T) {
	ctx := SetupSignalHandlerWithLogger(zerolog.New(io.Discard))

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled before any signal")
	default:
	}

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled after SIGTERM")
	}
}
