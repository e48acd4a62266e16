package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type limits struct {
	maxDepth  int
	maxLength int
	sorted    bool
}

func withMaxDepth(n int) Option[*limits] {
	return New(func(l *limits) error {
		if n <= 0 {
			return errors.New("max depth must be positive")
		}
		l.maxDepth = n

		return nil
	})
}

func withSorted() Option[*limits] {
	return NoError(func(l *limits) { l.sorted = true })
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		l := &limits{maxDepth: 512}
		err := Apply(l, withMaxDepth(8), withSorted(), withMaxDepth(16))
		require.NoError(t, err)
		require.Equal(t, 16, l.maxDepth)
		require.True(t, l.sorted)
	})

	t.Run("stops at first error", func(t *testing.T) {
		l := &limits{}
		err := Apply(l,
			NoError(func(l *limits) { l.maxLength = 10 }),
			withMaxDepth(0),
			withSorted(),
		)
		require.EqualError(t, err, "max depth must be positive")
		require.Equal(t, 10, l.maxLength)
		require.False(t, l.sorted, "options after the failing one are not applied")
	})

	t.Run("skips nil options", func(t *testing.T) {
		l := &limits{}
		var none Option[*limits]
		require.NoError(t, Apply(l, none, withSorted()))
		require.True(t, l.sorted)
	})

	t.Run("no options", func(t *testing.T) {
		l := &limits{maxDepth: 3}
		require.NoError(t, Apply(l))
		require.Equal(t, 3, l.maxDepth)
	})
}
