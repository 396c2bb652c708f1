package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFlag(t *testing.T) {
	t.Run("Basic Operations", func(t *testing.T) {
		sf := NewSafeBool()
		assert.False(t, sf.Value())

		sf.Set(true)
		assert.True(t, sf.Value())

		assert.True(t, sf.Swap(false))
		assert.False(t, sf.Value())
		assert.False(t, sf.Swap(false))
	})

	t.Run("Swap Claims Once", func(t *testing.T) {
		sf := NewSafeBool()
		sf.Set(true)

		var wg sync.WaitGroup
		var mu sync.Mutex
		claimed := 0
		iterations := 100

		wg.Add(iterations)
		for i := 0; i < iterations; i++ {
			go func() {
				defer wg.Done()
				if sf.Swap(false) {
					mu.Lock()
					claimed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, claimed)
	})
}
