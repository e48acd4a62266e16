package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// NewReader wraps r so that reads return the decompressed stream.
//
// Closing the returned reader releases decoder resources; it does not close r.
//
// Parameters:
//   - ct: Envelope of the data in r
//   - r: Compressed source
//
// Returns:
//   - io.ReadCloser: Decompressing reader
//   - error: Malformed envelope header, or errs.ErrUnsupportedCompression
func NewReader(ct format.CompressionType, r io.Reader) (io.ReadCloser, error) {
	switch ct {
	case format.CompressionNone:
		return io.NopCloser(r), nil
	case format.CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip header: %w", err)
		}

		return zr, nil
	case format.CompressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zlib header: %w", err)
		}

		return zr, nil
	case format.CompressionZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}

		return zr.IOReadCloser(), nil
	case format.CompressionS2:
		return io.NopCloser(s2.NewReader(r)), nil
	case format.CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, ct)
	}
}

// NewWriter wraps w so that writes are compressed with ct.
//
// The caller must Close the returned writer to flush the envelope trailer.
// Closing does not close w.
func NewWriter(ct format.CompressionType, w io.Writer) (io.WriteCloser, error) {
	switch ct {
	case format.CompressionNone:
		return nopWriteCloser{w}, nil
	case format.CompressionGzip:
		return gzip.NewWriter(w), nil
	case format.CompressionZlib:
		return zlib.NewWriter(w), nil
	case format.CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}

		return zw, nil
	case format.CompressionS2:
		return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
	case format.CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, ct)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
