package codec

import (
	"fmt"

	"github.com/arloliu/nbt/internal/options"
	"github.com/arloliu/nbt/tag"
)

const (
	// DefaultMaxDepth is the default nesting limit for lists and compounds.
	DefaultMaxDepth = 512

	// DefaultMaxLength is the default ceiling for a declared array or list length.
	DefaultMaxLength = 1 << 26
)

// DecoderConfig holds the limits and policies of a Decoder.
type DecoderConfig struct {
	maxDepth     int
	maxLength    int
	lossyStrings bool
}

// NewDecoderConfig returns a configuration with default limits.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		maxDepth:  DefaultMaxDepth,
		maxLength: DefaultMaxLength,
	}
}

func (c *DecoderConfig) setMaxDepth(n int) error {
	if n <= 0 {
		return fmt.Errorf("invalid max depth: %d", n)
	}
	c.maxDepth = n

	return nil
}

func (c *DecoderConfig) setMaxLength(n int) error {
	if n < 0 || n > tag.MaxArrayLength {
		return fmt.Errorf("invalid max length: %d", n)
	}
	c.maxLength = n

	return nil
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithMaxDepth limits how deeply lists and compounds may nest. The root
// compound is depth 1. Exceeding the limit fails with errs.ErrMaxDepthExceeded.
func WithMaxDepth(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		return c.setMaxDepth(n)
	})
}

// WithMaxLength sets the ceiling for declared array and list lengths.
// Larger declarations fail with errs.ErrInvalidLength before any allocation.
func WithMaxLength(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		return c.setMaxLength(n)
	})
}

// WithLossyStrings decodes String payloads that are not valid UTF-8 by
// replacing invalid sequences with U+FFFD instead of failing. Compound entry
// names are always decoded strictly.
func WithLossyStrings() DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.lossyStrings = true
	})
}
