package compress

import (
	"bytes"

	"github.com/arloliu/nbt/format"
)

// MagicLen is the number of leading bytes Detect needs to recognize every
// supported envelope.
const MagicLen = 10

var (
	gzipMagic   = []byte{0x1F, 0x8B}
	zstdMagic   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic    = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic     = []byte{0xFF, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	snappyMagic = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// Detect identifies the envelope of a stream from its first bytes.
//
// Anything unrecognized, including a raw document starting with the Compound
// type byte 0x0A, is reported as format.CompressionNone. Snappy framed
// streams are reported as S2, whose reader accepts them.
func Detect(prefix []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return format.CompressionGzip
	case isZlibHeader(prefix):
		return format.CompressionZlib
	case bytes.HasPrefix(prefix, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(prefix, s2Magic), bytes.HasPrefix(prefix, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// isZlibHeader checks for deflate with a 32KiB window at one of the four
// standard levels.
func isZlibHeader(prefix []byte) bool {
	if len(prefix) < 2 || prefix[0] != 0x78 {
		return false
	}

	switch prefix[1] {
	case 0x01, 0x5E, 0x9C, 0xDA:
		return true
	default:
		return false
	}
}
