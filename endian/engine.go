// Package endian provides the byte order engine used by the NBT codec.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface,
// so the same engine value serves both the decoder (fixed-width reads) and the
// encoder (appends into a growing buffer).
//
// # Basic Usage
//
// NBT is big-endian for every multi-byte scalar, so the codec always uses
// GetBigEndianEngine:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(length))
//	v := int32(engine.Uint32(buf[:4]))
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
//
// It is never used on the NBT wire; tests use it to show that swapping the
// byte order of a scalar changes the decoded value.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendFloat32 appends the IEEE-754 bits of v using engine.
func AppendFloat32(engine EndianEngine, buf []byte, v float32) []byte {
	return engine.AppendUint32(buf, math.Float32bits(v))
}

// AppendFloat64 appends the IEEE-754 bits of v using engine.
func AppendFloat64(engine EndianEngine, buf []byte, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// Float32 decodes the first 4 bytes of b as an IEEE-754 binary32.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// Float64 decodes the first 8 bytes of b as an IEEE-754 binary64.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
