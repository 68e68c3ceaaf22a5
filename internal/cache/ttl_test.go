package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counting(calls *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestGetOrCompute_HitWithinTTL(t *testing.T) {
	c := New[string](0, time.Minute)
	key := Key{Spreadsheet: "book", Sheet: "東門店"}
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute(context.Background(), key, counting(&calls, "v1"))
		require.NoError(t, err)
		assert.Equal(t, "v1", v)
	}
	assert.Equal(t, int32(1), calls.Load())

	st := c.Stats()
	assert.Equal(t, 1, st.Entries)
	assert.Equal(t, uint64(2), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
}

func TestGetOrCompute_KeysAreIndependent(t *testing.T) {
	c := New[string](0, time.Minute)
	var calls atomic.Int32

	_, _ = c.GetOrCompute(context.Background(), Key{"book", "東門店"}, counting(&calls, "a"))
	v, _ := c.GetOrCompute(context.Background(), Key{"book", "文賢店"}, counting(&calls, "b"))
	assert.Equal(t, "b", v)
	v, _ = c.GetOrCompute(context.Background(), Key{"other", "東門店"}, counting(&calls, "c"))
	assert.Equal(t, "c", v)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 3, c.Len())
}

func TestGetOrCompute_ExpiresAfterTTL(t *testing.T) {
	c := New[string](0, 30*time.Millisecond)
	key := Key{"book", "ALL"}
	var calls atomic.Int32

	_, _ = c.GetOrCompute(context.Background(), key, counting(&calls, "old"))
	time.Sleep(80 * time.Millisecond)
	v, err := c.GetOrCompute(context.Background(), key, counting(&calls, "new"))
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetOrCompute_ErrorsAreNotCached(t *testing.T) {
	c := New[string](0, time.Minute)
	key := Key{"book", "missing"}
	boom := errors.New("boom")
	var calls atomic.Int32

	_, err := c.GetOrCompute(context.Background(), key, func(context.Context) (string, error) {
		calls.Add(1)
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get(key)
	assert.False(t, ok)

	v, err := c.GetOrCompute(context.Background(), key, counting(&calls, "ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClear_RemovesEveryKey(t *testing.T) {
	c := New[string](0, time.Minute)
	var calls atomic.Int32
	keys := []Key{{"book", "a"}, {"book", "b"}, {"book2", "a"}}
	for _, k := range keys {
		_, _ = c.GetOrCompute(context.Background(), k, counting(&calls, k.Sheet))
	}
	require.Equal(t, 3, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	for _, k := range keys {
		_, _ = c.GetOrCompute(context.Background(), k, counting(&calls, k.Sheet))
	}
	assert.Equal(t, int32(6), calls.Load())
}

func TestGetOrCompute_ConcurrentMissesComputeOnce(t *testing.T) {
	c := New[string](0, time.Minute)
	key := Key{"book", "ALL"}
	var calls atomic.Int32
	release := make(chan struct{})

	compute := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCompute(context.Background(), key, compute)
			assert.NoError(t, err)
			assert.Equal(t, "v", v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestClear_DiscardsInFlightResult(t *testing.T) {
	c := New[string](0, time.Minute)
	key := Key{"book", "ALL"}
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.GetOrCompute(context.Background(), key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	c.Clear()

	var calls atomic.Int32
	v, err := c.GetOrCompute(context.Background(), key, counting(&calls, "fresh"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, int32(1), calls.Load())

	close(release)
	<-done

	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestGetOrCompute_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New[string](0, time.Minute)
	key := Key{"book", "東門店"}
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func(ctx context.Context) (string, error) {
		close(started)
		select {
		case <-release:
			return "v", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.GetOrCompute(ctx, key, compute)
		firstErr <- err
	}()
	<-started

	secondVal := make(chan string, 1)
	secondErr := make(chan error, 1)
	go func() {
		v, err := c.GetOrCompute(context.Background(), key, compute)
		secondVal <- v
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, "v", <-secondVal)

	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestNew_Defaults(t *testing.T) {
	c := New[int](-1, 0)
	assert.Equal(t, DefaultTTL.String(), c.Stats().TTL)
}
