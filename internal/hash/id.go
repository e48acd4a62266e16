package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Hasher accumulates an xxHash64 over fixed-width values and strings.
//
// Integers are fed in big-endian order so the fingerprint of a value does
// not depend on the host byte order.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// New creates an empty Hasher.
func New() *Hasher {
	return &Hasher{d: xxhash.New()}
}

func (h *Hasher) Byte(v byte) {
	h.buf[0] = v
	_, _ = h.d.Write(h.buf[:1])
}

func (h *Hasher) Uint32(v uint32) {
	binary.BigEndian.PutUint32(h.buf[:4], v)
	_, _ = h.d.Write(h.buf[:4])
}

func (h *Hasher) Uint64(v uint64) {
	binary.BigEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// String feeds the length followed by the bytes of s, so adjacent strings
// cannot collide by shifting bytes between them.
func (h *Hasher) String(s string) {
	h.Uint32(uint32(len(s))) //nolint:gosec
	_, _ = h.d.WriteString(s)
}

// Sum64 returns the current hash.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}

// Pair mixes two hashes into one. Pair(a, b) != Pair(b, a) in general.
func Pair(a, b uint64) uint64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], a)
	binary.BigEndian.PutUint64(buf[8:], b)

	return xxhash.Sum64(buf[:])
}
