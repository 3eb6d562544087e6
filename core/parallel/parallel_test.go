package parallel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, items := range []int{0, 1, 7, 100, 1001} {
		for _, workers := range []int{1, 3, 16} {
			seen := make([]int, items)
			ParallelizeN(items, workers, func(start, end int) {
				for i := start; i < end; i++ {
					seen[i]++
				}
			})
			for i, n := range seen {
				assert.Equal(t, 1, n, "items=%d workers=%d index=%d", items, workers, i)
			}
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	var mu sync.Mutex
	var calls int
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)

	total := 0
	ParallelizeWithThreshold(500, 100, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		total += end - start
	})
	assert.Equal(t, 500, total)

	ParallelizeWithThreshold(0, 100, func(start, end int) {
		t.Fatal("fn must not run for an empty range")
	})
}
