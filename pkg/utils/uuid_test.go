package utils

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator(t *testing.T) {
	t.Run("MonotonicSequence", func(t *testing.T) {
		g := NewIDGenerator()
		ids := make([]string, 1000)
		for i := range ids {
			ids[i] = g.Next()
		}

		assert.True(t, sort.StringsAreSorted(ids))
		for i := 1; i < len(ids); i++ {
			require.Less(t, ids[i-1], ids[i])
		}
	})

	t.Run("UniqueUnderConcurrency", func(t *testing.T) {
		g := NewIDGenerator()
		const workers, perWorker = 8, 200

		var (
			mu   sync.Mutex
			seen = make(map[string]struct{}, workers*perWorker)
			wg   sync.WaitGroup
		)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					id := g.Next()
					mu.Lock()
					seen[id] = struct{}{}
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Len(t, seen, workers*perWorker)
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "0192f3a1", ShortID("0192F3A1-7C4B-7000-8000-000000000000"))
}
