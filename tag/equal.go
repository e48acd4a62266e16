package tag

import (
	"math"
	"slices"

	"github.com/arloliu/nbt/internal/hash"
)

// Equal reports whether a and b are the same tree.
//
// Compound entries are compared as sets, so two compounds holding the same
// entries in different orders are equal. Floats are compared by bit pattern,
// which makes a NaN equal to an identical NaN.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case *Byte:
		return x.Value == b.(*Byte).Value
	case *Short:
		return x.Value == b.(*Short).Value
	case *Int:
		return x.Value == b.(*Int).Value
	case *Long:
		return x.Value == b.(*Long).Value
	case *Float:
		return math.Float32bits(x.Value) == math.Float32bits(b.(*Float).Value)
	case *Double:
		return math.Float64bits(x.Value) == math.Float64bits(b.(*Double).Value)
	case *String:
		return x.Value == b.(*String).Value
	case *ByteArray:
		return slices.Equal(x.Value, b.(*ByteArray).Value)
	case *IntArray:
		return slices.Equal(x.Value, b.(*IntArray).Value)
	case *LongArray:
		return slices.Equal(x.Value, b.(*LongArray).Value)
	case *List:
		y := b.(*List)
		if len(x.elems) != len(y.elems) {
			return false
		}
		// Empty lists of different declared types still encode differently.
		if len(x.elems) == 0 && x.elemType != y.elemType {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}

		return true
	case *Compound:
		y := b.(*Compound)
		if x.Len() != y.Len() {
			return false
		}
		for i, name := range x.names {
			other := y.Get(name)
			if other == nil || !Equal(x.values[i], other) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Hash returns a 64-bit fingerprint of t.
//
// Trees that are Equal hash to the same value regardless of compound entry
// order. Different trees collide only with xxHash64 probability.
func Hash(t Tag) uint64 {
	h := hash.New()
	writeHash(h, t)

	return h.Sum64()
}

func writeHash(h *hash.Hasher, t Tag) {
	if t == nil {
		h.Byte(0)
		return
	}

	h.Byte(byte(t.Type()))

	switch v := t.(type) {
	case *Byte:
		h.Byte(byte(v.Value))
	case *Short:
		h.Uint32(uint32(uint16(v.Value)))
	case *Int:
		h.Uint32(uint32(v.Value))
	case *Long:
		h.Uint64(uint64(v.Value))
	case *Float:
		h.Uint32(math.Float32bits(v.Value))
	case *Double:
		h.Uint64(math.Float64bits(v.Value))
	case *String:
		h.String(v.Value)
	case *ByteArray:
		h.Uint32(uint32(len(v.Value))) //nolint:gosec
		for _, e := range v.Value {
			h.Byte(byte(e))
		}
	case *IntArray:
		h.Uint32(uint32(len(v.Value))) //nolint:gosec
		for _, e := range v.Value {
			h.Uint32(uint32(e))
		}
	case *LongArray:
		h.Uint32(uint32(len(v.Value))) //nolint:gosec
		for _, e := range v.Value {
			h.Uint64(uint64(e))
		}
	case *List:
		h.Byte(byte(v.elemType))
		h.Uint32(uint32(len(v.elems))) //nolint:gosec
		for _, e := range v.elems {
			writeHash(h, e)
		}
	case *Compound:
		// Entries are folded with addition so the result ignores order.
		var acc uint64
		for i, name := range v.names {
			acc += hash.Pair(hash.ID(name), Hash(v.values[i]))
		}
		h.Uint32(uint32(len(v.names))) //nolint:gosec
		h.Uint64(acc)
	}
}

// Clone returns a deep copy of t. Mutating the copy never affects t.
func Clone(t Tag) Tag {
	switch v := t.(type) {
	case *Byte:
		return NewByte(v.Value)
	case *Short:
		return NewShort(v.Value)
	case *Int:
		return NewInt(v.Value)
	case *Long:
		return NewLong(v.Value)
	case *Float:
		return NewFloat(v.Value)
	case *Double:
		return NewDouble(v.Value)
	case *String:
		return NewString(v.Value)
	case *ByteArray:
		return NewByteArray(slices.Clone(v.Value))
	case *IntArray:
		return NewIntArray(slices.Clone(v.Value))
	case *LongArray:
		return NewLongArray(slices.Clone(v.Value))
	case *List:
		l := newListWithCap(v.elemType, len(v.elems))
		for _, e := range v.elems {
			l.elems = append(l.elems, Clone(e))
		}

		return l
	case *Compound:
		c := &Compound{
			names:  slices.Clone(v.names),
			values: make([]Tag, len(v.values)),
			index:  make(map[string]int, len(v.names)),
		}
		for i, name := range c.names {
			c.index[name] = i
			c.values[i] = Clone(v.values[i])
		}

		return c
	default:
		return nil
	}
}
