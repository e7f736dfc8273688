package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("job repeats and survives panic", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls int32
		done := make(chan struct{})
		go func() {
			NewInstance("test", time.Millisecond, time.Millisecond).Run(ctx, func(ctx context.Context) error {
				if atomic.AddInt32(&calls, 1) == 1 {
					panic("boom")
				}
				return nil
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker not stopped")
		}
	})
}
