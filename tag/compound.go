package tag

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// MaxStringLength is the largest encoded length of a string or entry name.
const MaxStringLength = 65535

// MaxArrayLength is the largest element count of an array or list.
const MaxArrayLength = 1<<31 - 1

// Compound maps names to tags and preserves insertion order.
//
// Replacing an existing name keeps its original position, so iteration order
// only changes through Delete and Set of a new name.
type Compound struct {
	names  []string
	values []Tag
	index  map[string]int
}

func (*Compound) Type() format.TagType { return format.TagCompound }
func (*Compound) isTag()               {}

// NewCompound creates an empty compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// ValidateName checks that name can be encoded as an NBT string.
//
// Returns:
//   - error: ErrInvalidUTF8 or ErrStringTooLong
func ValidateName(name string) error {
	if len(name) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrStringTooLong, len(name), MaxStringLength)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: name %q", errs.ErrInvalidUTF8, name)
	}

	return nil
}

// Len returns the number of entries.
func (c *Compound) Len() int {
	return len(c.names)
}

// Has reports whether name is present.
func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Get returns the tag stored under name, or nil.
func (c *Compound) Get(name string) Tag {
	if i, ok := c.index[name]; ok {
		return c.values[i]
	}

	return nil
}

// Set stores t under name. An existing entry is replaced in place.
//
// Returns:
//   - error: ErrNilTag, ErrInvalidUTF8 or ErrStringTooLong
func (c *Compound) Set(name string, t Tag) error {
	if IsNil(t) {
		return fmt.Errorf("%w: entry %q", errs.ErrNilTag, name)
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	if c.index == nil {
		c.index = make(map[string]int)
	}

	if i, ok := c.index[name]; ok {
		c.values[i] = t
		return nil
	}

	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	c.values = append(c.values, t)

	return nil
}

// MustSet is like Set but panics on error and returns c for chaining.
// It is intended for building literal trees.
func (c *Compound) MustSet(name string, t Tag) *Compound {
	if err := c.Set(name, t); err != nil {
		panic(err)
	}

	return c
}

// Delete removes name. It reports whether the entry existed.
func (c *Compound) Delete(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}

	c.names = slices.Delete(c.names, i, i+1)
	c.values = slices.Delete(c.values, i, i+1)
	delete(c.index, name)
	for j := i; j < len(c.names); j++ {
		c.index[c.names[j]] = j
	}

	return true
}

// Names returns the entry names in iteration order. The caller must not modify the slice.
func (c *Compound) Names() []string {
	return c.names
}

// All returns an iterator over entries in insertion order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for i, name := range c.names {
			if !yield(name, c.values[i]) {
				return
			}
		}
	}
}

// Sorted returns an iterator over entries in ascending name order.
func (c *Compound) Sorted() iter.Seq2[string, Tag] {
	order := make([]int, len(c.names))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return strings.Compare(c.names[a], c.names[b])
	})

	return func(yield func(string, Tag) bool) {
		for _, i := range order {
			if !yield(c.names[i], c.values[i]) {
				return
			}
		}
	}
}

func (c *Compound) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range c.names {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(render(c.values[i]))
	}
	sb.WriteByte('}')

	return sb.String()
}

// Typed getters look up name and apply the matching As accessor.

// GetByte returns the Byte stored under name.
func (c *Compound) GetByte(name string) (int8, bool) { return AsByte(c.Get(name)) }

// GetShort returns the Short stored under name.
func (c *Compound) GetShort(name string) (int16, bool) { return AsShort(c.Get(name)) }

// GetInt returns the Int stored under name.
func (c *Compound) GetInt(name string) (int32, bool) { return AsInt(c.Get(name)) }

// GetLong returns the Long stored under name.
func (c *Compound) GetLong(name string) (int64, bool) { return AsLong(c.Get(name)) }

// GetFloat returns the Float stored under name.
func (c *Compound) GetFloat(name string) (float32, bool) { return AsFloat(c.Get(name)) }

// GetDouble returns the Double stored under name.
func (c *Compound) GetDouble(name string) (float64, bool) { return AsDouble(c.Get(name)) }

// GetString returns the String stored under name.
func (c *Compound) GetString(name string) (string, bool) { return AsString(c.Get(name)) }

// GetByteArray returns the ByteArray stored under name.
func (c *Compound) GetByteArray(name string) ([]int8, bool) { return AsByteArray(c.Get(name)) }

// GetIntArray returns the IntArray stored under name.
func (c *Compound) GetIntArray(name string) ([]int32, bool) { return AsIntArray(c.Get(name)) }

// GetLongArray returns the LongArray stored under name.
func (c *Compound) GetLongArray(name string) ([]int64, bool) { return AsLongArray(c.Get(name)) }

// GetList returns the List stored under name.
func (c *Compound) GetList(name string) (*List, bool) { return AsList(c.Get(name)) }

// GetCompound returns the Compound stored under name.
func (c *Compound) GetCompound(name string) (*Compound, bool) { return AsCompound(c.Get(name)) }
