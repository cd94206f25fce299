package retry

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

func TestConcurrentMap_PreservesOrder(t *testing.T) {
	recordSleeps(t)
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}

	out, err := ConcurrentMap(context.Background(), items, 3, time.Second, func(_ context.Context, n int) (int, error) {
		// later items in a batch finish first
		time.Sleep(time.Duration(10-n%3*3) * time.Millisecond)
		return n * 10, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60, 70}, out)
}

func TestConcurrentMap_DelaysBetweenBatchesOnly(t *testing.T) {
	waits := recordSleeps(t)
	orig := jitter
	jitter = func() float64 { return 1 }
	t.Cleanup(func() { jitter = orig })

	_, err := ConcurrentMap(context.Background(), []int{1, 2, 3, 4, 5, 6, 7}, 3, 2*time.Second, func(_ context.Context, n int) (int, error) {
		return n, nil
	})

	require.NoError(t, err)
	// 3 batches -> 2 gaps
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, *waits)
}

func TestConcurrentMap_BoundsParallelism(t *testing.T) {
	recordSleeps(t)
	var inFlight, peak int32

	_, err := ConcurrentMap(context.Background(), make([]int, 10), 3, 0, func(_ context.Context, _ int) (int, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return 0, nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestConcurrentMap_ErrorStopsLaterBatches(t *testing.T) {
	recordSleeps(t)
	var mu sync.Mutex
	seen := map[int]bool{}

	_, err := ConcurrentMap(context.Background(), []int{1, 2, 3, 4, 5}, 2, 0, func(_ context.Context, n int) (int, error) {
		mu.Lock()
		seen[n] = true
		mu.Unlock()
		if n == 2 {
			return 0, errors.New("bad item")
		}
		return n, nil
	})

	require.Error(t, err)
	assert.True(t, seen[1])
	assert.True(t, seen[2])
	assert.False(t, seen[3])
}

func TestConcurrentMap_Empty(t *testing.T) {
	out, err := ConcurrentMap(context.Background(), []string{}, 3, time.Second, func(_ context.Context, s string) (string, error) {
		return s, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestJittered_Bounds(t *testing.T) {
	base := 10 * time.Second
	for i := 0; i < 1000; i++ {
		d := Jittered(base)
		assert.GreaterOrEqual(t, d, 6900*time.Millisecond)
		assert.LessOrEqual(t, d, 13100*time.Millisecond)
	}
}
