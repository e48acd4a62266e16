package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/s2"
)

// s2WriterPool holds single-goroutine writers; with concurrency 1 Reset does
// not start a background writer.
var s2WriterPool = sync.Pool{
	New: func() any {
		return s2.NewWriter(nil, s2.WriterConcurrency(1))
	},
}

var s2ReaderPool = sync.Pool{
	New: func() any {
		return s2.NewReader(nil)
	},
}

// S2Compressor produces S2 framed streams, the same bytes NewWriter emits
// for format.CompressionS2. Snappy framed streams decode as well.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress wraps data in an S2 stream. Empty input yields nil.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer

	zw, _ := s2WriterPool.Get().(*s2.Writer)
	zw.Reset(&buf)
	defer func() {
		zw.Reset(nil)
		s2WriterPool.Put(zw)
	}()

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress reads a complete S2 stream. Data that does not start with the
// stream identifier fails.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, _ := s2ReaderPool.Get().(*s2.Reader)
	zr.Reset(bytes.NewReader(data))
	defer func() {
		zr.Reset(nil)
		s2ReaderPool.Put(zr)
	}()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
