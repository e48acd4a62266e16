// Package nbt reads and writes Named Binary Tag (NBT) files.
//
// NBT is a big-endian, self-describing, tree-structured binary format. A file
// holds one named root compound, usually wrapped in a gzip or zlib envelope.
//
// # Core Features
//
//   - Typed tag tree with insertion-ordered compounds (package tag)
//   - Streaming decoder and encoder with depth and length limits (package codec)
//   - Automatic envelope detection: raw, gzip, zlib, zstd, S2 and LZ4 (package compress)
//   - Order-insensitive equality and xxHash64 fingerprints for trees
//
// # Basic Usage
//
// Reading a level file:
//
//	doc, ct, err := nbt.ReadFile("level.dat")
//	if err != nil {
//	    return err
//	}
//	data, _ := doc.Root.GetCompound("Data")
//	name, _ := data.GetString("LevelName")
//	fmt.Println(name, ct) // ct is format.CompressionGzip
//
// Building and writing a document:
//
//	doc := nbt.NewDocument("")
//	doc.Root.MustSet("DataVersion", tag.NewInt(3465))
//	err := nbt.WriteFile("out.dat", doc, format.CompressionGzip)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// compress packages. For fine-grained control, such as decoding a compound
// body or reusing a decoder across concatenated documents, use codec directly.
package nbt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/hash"
	"github.com/arloliu/nbt/tag"
)

// Document is a root compound together with its name.
type Document = codec.Document

// NewDocument creates a document with an empty root compound.
func NewDocument(name string) Document {
	return codec.NewDocument(name)
}

// Read decodes one document from r, detecting the envelope from its first
// bytes.
//
// Parameters:
//   - r: Source holding a raw or compressed document
//   - opts: Decoder options (see codec.WithMaxDepth, codec.WithMaxLength, codec.WithLossyStrings)
//
// Returns:
//   - Document: Decoded document
//   - format.CompressionType: Envelope found on the stream
//   - error: Decode or envelope error
func Read(r io.Reader, opts ...codec.DecoderOption) (Document, format.CompressionType, error) {
	br := bufio.NewReader(r)

	prefix, err := br.Peek(compress.MagicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return Document{}, format.CompressionNone, fmt.Errorf("%w: detecting envelope: %w", errs.ErrIO, err)
	}

	ct := compress.Detect(prefix)
	doc, err := ReadAs(br, ct, opts...)

	return doc, ct, err
}

// ReadAs decodes one document from r whose envelope is already known.
func ReadAs(r io.Reader, ct format.CompressionType, opts ...codec.DecoderOption) (Document, error) {
	if ct == format.CompressionNone {
		return decode(r, opts)
	}

	rc, err := compress.NewReader(ct, r)
	if err != nil {
		if errors.Is(err, errs.ErrUnsupportedCompression) {
			return Document{}, err
		}

		return Document{}, fmt.Errorf("%w: opening %s envelope: %w", errs.ErrIO, ct, err)
	}
	defer rc.Close()

	return decode(rc, opts)
}

func decode(r io.Reader, opts []codec.DecoderOption) (Document, error) {
	dec, err := codec.NewDecoder(r, opts...)
	if err != nil {
		return Document{}, err
	}

	return dec.Decode()
}

// Unmarshal decodes a document held in memory, detecting its envelope.
//
// The envelope is removed with the block codec for the detected type and the
// raw bytes are decoded from memory, so declared array and list lengths are
// bounded by the decompressed size before anything is allocated.
func Unmarshal(data []byte, opts ...codec.DecoderOption) (Document, format.CompressionType, error) {
	ct := compress.Detect(data)

	c, err := compress.GetCodec(ct)
	if err != nil {
		return Document{}, ct, err
	}

	raw, err := c.Decompress(data)
	if err != nil {
		return Document{}, ct, fmt.Errorf("%w: opening %s envelope: %w", errs.ErrIO, ct, err)
	}

	doc, err := codec.Unmarshal(raw, opts...)

	return doc, ct, err
}

// Write encodes doc to w inside the ct envelope.
//
// Parameters:
//   - w: Destination
//   - doc: Document to encode; its root must not be nil
//   - ct: Envelope to wrap the document in
//   - opts: Encoder options (see codec.WithSortedKeys)
//
// Returns:
//   - error: Encode error, errs.ErrUnsupportedCompression, or errs.ErrIO
func Write(w io.Writer, doc Document, ct format.CompressionType, opts ...codec.EncoderOption) error {
	enc, err := codec.NewEncoder(nil, opts...)
	if err != nil {
		return err
	}

	wc, err := compress.NewWriter(ct, w)
	if err != nil {
		return err
	}
	enc.Reset(wc)

	// The encoder writes nothing on failure, but closing still emits an
	// empty envelope, so w may hold a few bytes after an error.
	if err := enc.Encode(doc); err != nil {
		_ = wc.Close()
		return err
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("%w: closing %s envelope: %w", errs.ErrIO, ct, err)
	}

	return nil
}

// Marshal encodes doc inside the ct envelope and returns the bytes. The
// result uses the same framing as Write, so Read and Unmarshal detect it.
func Marshal(doc Document, ct format.CompressionType, opts ...codec.EncoderOption) ([]byte, error) {
	c, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Marshal(doc, opts...)
	if err != nil {
		return nil, err
	}

	out, err := c.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s envelope: %w", errs.ErrIO, ct, err)
	}

	return out, nil
}

// ReadFile reads and decodes the document stored at path.
func ReadFile(path string, opts ...codec.DecoderOption) (Document, format.CompressionType, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, format.CompressionNone, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	defer f.Close()

	return Read(f, opts...)
}

// WriteFile encodes doc to path, replacing any existing file.
func WriteFile(path string, doc Document, ct format.CompressionType, opts ...codec.EncoderOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	if err := Write(f, doc, ct, opts...); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return nil
}

// Fingerprint returns an order-insensitive 64-bit hash of the document.
// Documents whose trees are equal share a fingerprint; the root name is
// included.
func Fingerprint(doc Document) uint64 {
	if doc.Root == nil {
		return 0
	}

	return hash.Pair(hash.ID(doc.Name), tag.Hash(doc.Root))
}
