// Package compress provides the envelopes that wrap encoded NBT documents.
//
// NBT itself is never compressed; files and network payloads wrap the raw
// document in an envelope. This package offers two views of each envelope:
//
//   - Block codecs (Codec) compress or decompress a whole document held in
//     memory. Use GetCodec or CreateCodec.
//   - Streaming wrappers (NewReader, NewWriter) compress while the encoder
//     writes and decompress while the decoder reads.
//
// # Supported Envelopes
//
//	Type                       Library                        Typical use
//	-------------------------  -----------------------------  ----------------------------
//	format.CompressionNone     none                           network NBT, raw files
//	format.CompressionGzip     klauspost/compress/gzip        level.dat, player data
//	format.CompressionZlib     klauspost/compress/zlib        region file chunks
//	format.CompressionZstd     klauspost/compress/zstd        archival, custom stores
//	format.CompressionS2       klauspost/compress/s2          fast caches
//	format.CompressionLZ4      pierrec/lz4/v4                 fast caches
//
// Building with the gozstd tag (and cgo) switches the Zstd block codec to
// github.com/valyala/gozstd.
//
// # Detection
//
// Detect inspects the first MagicLen bytes of a stream and reports the
// envelope. gzip is recognized by 1F 8B, zlib by 78 followed by 01, 5E, 9C or
// DA, zstd, LZ4 and S2 by their frame magics. Anything else is treated as a
// raw document.
//
//	br := bufio.NewReader(f)
//	prefix, _ := br.Peek(compress.MagicLen)
//	rc, err := compress.NewReader(compress.Detect(prefix), br)
//
// Both views produce the same framing, so bytes from a block codec can be
// read by NewReader and bytes from NewWriter can be passed to Decompress.
//
// # Thread Safety
//
// All block codecs are stateless values backed by pools and are safe for
// concurrent use. Streaming readers and writers belong to one goroutine.
package compress
