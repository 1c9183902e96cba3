package mounts

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/adminshell/internal/layout"
)

func TestRegistry_SubscribeAndClose(t *testing.T) {
	r := New()

	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)
	assert.Equal(t, "mount-1", sub.ID())
	assert.Equal(t, 1, r.Len())

	sub.Close()
	assert.Equal(t, 0, r.Len(), "unmount should leave no subscriptions")

	// Closing twice releases once.
	sub.Close()
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SubscribeErrors(t *testing.T) {
	r := New()

	_, err := r.Subscribe("")
	assert.ErrorIs(t, err, ErrInvalidMount)

	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)
	defer sub.Close()

	_, err = r.Subscribe("mount-1")
	assert.ErrorIs(t, err, ErrDuplicateMount)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ResubscribeAfterClose(t *testing.T) {
	r := New()

	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)
	sub.Close()

	again, err := r.Subscribe("mount-1")
	require.NoError(t, err)
	defer again.Close()

	// A stale Close must not remove the new registration.
	sub.Close()
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Deliver(t *testing.T) {
	r := New()
	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)
	defer sub.Close()

	ctx := context.Background()
	require.NoError(t, r.Deliver(ctx, "mount-1", layout.Resize(500)))
	require.NoError(t, r.Deliver(ctx, "mount-1", layout.ToggleEvent()))

	assert.Equal(t, layout.Resize(500), <-sub.Events())
	assert.Equal(t, layout.ToggleEvent(), <-sub.Events())
}

func TestRegistry_DeliverUnknown(t *testing.T) {
	r := New()

	err := r.Deliver(context.Background(), "missing", layout.ToggleEvent())
	assert.ErrorIs(t, err, ErrUnknownMount)

	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)
	sub.Close()

	err = r.Deliver(context.Background(), "mount-1", layout.ToggleEvent())
	assert.ErrorIs(t, err, ErrUnknownMount)
}

func TestRegistry_DeliverFullQueue(t *testing.T) {
	r := New()
	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)

	for i := 0; i < eventBuffer; i++ {
		require.NoError(t, r.Deliver(context.Background(), "mount-1", layout.Resize(i)))
	}

	t.Run("context expires", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := r.Deliver(ctx, "mount-1", layout.ToggleEvent())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("mount closes while blocked", func(t *testing.T) {
		errCh := make(chan error, 1)
		go func() {
			errCh <- r.Deliver(context.Background(), "mount-1", layout.ToggleEvent())
		}()

		time.Sleep(20 * time.Millisecond)
		sub.Close()

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, ErrUnknownMount)
		case <-time.After(time.Second):
			t.Fatal("Deliver did not return after Close")
		}
	})
}

func TestRegistry_SingleSubscriptionAcrossResizes(t *testing.T) {
	r := New()
	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)

	state := layout.New(1200)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			state.Apply(<-sub.Events())
		}
	}()

	for i := 0; i < 100; i++ {
		width := 600
		if i%2 == 0 {
			width = 1000
		}
		require.NoError(t, r.Deliver(context.Background(), "mount-1", layout.Resize(width)))
		assert.Equal(t, 1, r.Len())
	}
	<-done

	sub.Close()
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ConcurrentMounts(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sub, err := r.Subscribe(fmt.Sprintf("mount-%d", i))
			if !assert.NoError(t, err) {
				return
			}
			defer sub.Close()
			_ = r.Deliver(context.Background(), sub.ID(), layout.ToggleEvent())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, r.Len())
}

func TestSubscription_ClosedNeverAcceptsEvents(t *testing.T) {
	r := New()
	sub, err := r.Subscribe("mount-1")
	require.NoError(t, err)
	sub.Close()

	// The queue has room, so only the done check keeps the event out.
	for i := 0; i < 1000; i++ {
		queued, err := sub.tryEnqueue(layout.ToggleEvent())
		require.False(t, queued)
		require.ErrorIs(t, err, ErrUnknownMount)
	}
	assert.Empty(t, sub.Events())
}

func TestRegistry_DeliverRacingClose(t *testing.T) {
	for i := 0; i < 200; i++ {
		r := New()
		sub, err := r.Subscribe("mount-1")
		require.NoError(t, err)

		errCh := make(chan error, 1)
		go func() {
			errCh <- r.Deliver(context.Background(), "mount-1", layout.ToggleEvent())
		}()
		sub.Close()

		// Either the event was queued before Close, or it was refused.
		if err := <-errCh; err != nil {
			require.ErrorIs(t, err, ErrUnknownMount)
			require.Empty(t, sub.Events())
		} else {
			require.Len(t, sub.Events(), 1)
		}
	}
}

func TestRegistry_Takeover(t *testing.T) {
	r := New()

	_, err := r.Takeover("")
	assert.ErrorIs(t, err, ErrInvalidMount)

	first, err := r.Subscribe("mount-1")
	require.NoError(t, err)

	second, err := r.Takeover("mount-1")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	select {
	case <-first.Done():
	default:
		t.Fatal("taken-over subscription should be done")
	}

	// The old owner's deferred Close must not remove the new registration.
	first.Close()
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Deliver(context.Background(), "mount-1", layout.ToggleEvent()))
	assert.Len(t, second.Events(), 1)
	assert.Empty(t, first.Events())

	second.Close()
	assert.Equal(t, 0, r.Len())

	// Takeover of an unknown id behaves like Subscribe.
	third, err := r.Takeover("mount-2")
	require.NoError(t, err)
	defer third.Close()
	assert.Equal(t, 1, r.Len())
}
