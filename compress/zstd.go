package compress

// ZstdCompressor compresses documents as Zstandard frames.
//
// The default build uses github.com/klauspost/compress/zstd. Building with
// the gozstd tag switches to the cgo binding github.com/valyala/gozstd; both
// produce standard frames, so either build reads the other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(raw)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
