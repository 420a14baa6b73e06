package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextTimestamp(t *testing.T) {
	t.Run("clock behind previous value", func(t *testing.T) {
		prev := time.Now().Add(time.Hour).Add(123 * time.Microsecond)
		next := nextTimestamp(prev)

		assert.True(t, next.After(prev))
		assert.Equal(t, prev.Truncate(time.Millisecond).Add(time.Millisecond), next)
		// Still distinct once a datetime(3) column drops the sub-millisecond part.
		assert.True(t, next.Truncate(time.Millisecond).After(prev.Truncate(time.Millisecond)))
	})

	t.Run("repeated calls never collide at millisecond precision", func(t *testing.T) {
		prev := timestamp()
		for i := 0; i < 50; i++ {
			next := nextTimestamp(prev)
			assert.GreaterOrEqual(t, next.Sub(prev), time.Millisecond)
			assert.Equal(t, next, next.Truncate(time.Millisecond))
			prev = next
		}
	})
}
