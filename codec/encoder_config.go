package codec

import (
	"fmt"

	"github.com/arloliu/nbt/internal/options"
)

// EncoderConfig holds the policies of an Encoder.
type EncoderConfig struct {
	maxDepth   int
	sortedKeys bool
}

// NewEncoderConfig returns a configuration with default settings.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{maxDepth: DefaultMaxDepth}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithSortedKeys writes compound entries in ascending name order, which makes
// the output independent of how the tree was built.
func WithSortedKeys() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.sortedKeys = true
	})
}

// WithWriteMaxDepth limits the nesting depth the encoder accepts.
func WithWriteMaxDepth(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("invalid max depth: %d", n)
		}
		c.maxDepth = n

		return nil
	})
}
