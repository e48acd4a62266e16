package format

import "strings"

type (
	TagType         uint8
	CompressionType uint8
)

const (
	TagEnd       TagType = 0x00 // TagEnd marks the end of a compound on the wire. Never a value.
	TagByte      TagType = 0x01 // TagByte is a signed 8-bit integer.
	TagShort     TagType = 0x02 // TagShort is a signed 16-bit integer.
	TagInt       TagType = 0x03 // TagInt is a signed 32-bit integer.
	TagLong      TagType = 0x04 // TagLong is a signed 64-bit integer.
	TagFloat     TagType = 0x05 // TagFloat is an IEEE-754 binary32.
	TagDouble    TagType = 0x06 // TagDouble is an IEEE-754 binary64.
	TagByteArray TagType = 0x07 // TagByteArray is a length-prefixed array of signed bytes.
	TagString    TagType = 0x08 // TagString is a u16 length-prefixed UTF-8 string.
	TagList      TagType = 0x09 // TagList is a homogeneous list of payloads.
	TagCompound  TagType = 0x0A // TagCompound is a set of named tags closed by TagEnd.
	TagIntArray  TagType = 0x0B // TagIntArray is a length-prefixed array of signed 32-bit integers.
	TagLongArray TagType = 0x0C // TagLongArray is a length-prefixed array of signed 64-bit integers.

	CompressionNone CompressionType = 0x1 // CompressionNone represents a raw NBT stream.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents a gzip framed stream (RFC 1952).
	CompressionZlib CompressionType = 0x3 // CompressionZlib represents a zlib framed stream (RFC 1950).
	CompressionZstd CompressionType = 0x4 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x5 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x6 // CompressionLZ4 represents LZ4 compression.
)

// Valid reports whether t is a known type code, TagEnd included.
func (t TagType) Valid() bool {
	return t <= TagLongArray
}

// IsValue reports whether t is a type code that can appear as a value in a tree.
func (t TagType) IsValue() bool {
	return t >= TagByte && t <= TagLongArray
}

func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name to a CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "none", "raw":
		return CompressionNone, true
	case "gzip", "gz":
		return CompressionGzip, true
	case "zlib":
		return CompressionZlib, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
