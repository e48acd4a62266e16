package codec

import (
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/options"
	"github.com/arloliu/nbt/internal/pool"
	"github.com/arloliu/nbt/tag"
)

// Encoder writes NBT documents to a byte sink.
//
// Each document is assembled in a pooled buffer and handed to the sink in a
// single Write, so a failed encode never leaves a partial document behind.
//
// A list is written with its declared element type, including an empty list
// declared as something other than End. An empty list therefore keeps its
// type across a round trip instead of collapsing to End.
//
// Note: The Encoder is NOT thread-safe.
type Encoder struct {
	w      io.Writer
	cfg    *EncoderConfig
	engine endian.EndianEngine
}

// NewEncoder creates an encoder writing to w.
//
// Parameters:
//   - w: Destination for raw (uncompressed) NBT
//   - opts: Encoder options
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: Invalid option value
func NewEncoder(w io.Writer, opts ...EncoderOption) (*Encoder, error) {
	cfg := NewEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{
		w:      w,
		cfg:    cfg,
		engine: endian.GetBigEndianEngine(),
	}, nil
}

// Reset directs subsequent documents to w, keeping the configuration.
func (e *Encoder) Reset(w io.Writer) {
	e.w = w
}

// Marshal encodes doc and returns the raw bytes.
func Marshal(doc Document, opts ...EncoderOption) ([]byte, error) {
	cfg := NewEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	e := &Encoder{cfg: cfg, engine: endian.GetBigEndianEngine()}

	return e.AppendDocument(nil, doc.Name, rootTag(doc))
}

// Encode writes doc to the sink.
func (e *Encoder) Encode(doc Document) error {
	return e.EncodeTag(doc.Name, rootTag(doc))
}

// EncodeTag writes root under name. Only a compound can be a document root.
//
// Returns:
//   - error: errs.ErrInvalidType for a non-compound root, errs.ErrNilTag,
//     errs.ErrListTypeMismatch, errs.ErrStringTooLong, errs.ErrInvalidUTF8,
//     errs.ErrInvalidLength,
//     errs.ErrMaxDepthExceeded, or errs.ErrIO when the sink fails
func (e *Encoder) EncodeTag(name string, root tag.Tag) error {
	bb := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(bb)

	buf, err := e.AppendDocument(bb.B, name, root)
	if err != nil {
		return err
	}
	bb.B = buf

	if _, err := bb.WriteTo(e.w); err != nil {
		return fmt.Errorf("%w: writing document: %w", errs.ErrIO, err)
	}

	return nil
}

// AppendDocument appends the encoding of root under name to buf.
func (e *Encoder) AppendDocument(buf []byte, name string, root tag.Tag) ([]byte, error) {
	if tag.IsNil(root) {
		return nil, fmt.Errorf("%w: document root", errs.ErrNilTag)
	}

	c, ok := root.(*tag.Compound)
	if !ok {
		return nil, fmt.Errorf("%w: root is %s, expected Compound", errs.ErrInvalidType, root.Type())
	}

	buf = append(buf, byte(format.TagCompound))

	buf, err := e.appendString(buf, name)
	if err != nil {
		return nil, fmt.Errorf("root name: %w", err)
	}

	return e.appendCompound(buf, c, 1)
}

func (e *Encoder) appendCompound(buf []byte, c *tag.Compound, depth int) ([]byte, error) {
	if depth > e.cfg.maxDepth {
		return nil, fmt.Errorf("%w: depth %d", errs.ErrMaxDepthExceeded, depth)
	}

	var entries iter.Seq2[string, tag.Tag]
	if e.cfg.sortedKeys {
		entries = c.Sorted()
	} else {
		entries = c.All()
	}

	var err error
	for name, v := range entries {
		if tag.IsNil(v) {
			return nil, fmt.Errorf("%w: entry %q", errs.ErrNilTag, name)
		}

		buf = append(buf, byte(v.Type()))
		if buf, err = e.appendString(buf, name); err != nil {
			return nil, err
		}
		if buf, err = e.appendPayload(buf, v, depth+1); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
	}

	return append(buf, byte(format.TagEnd)), nil
}

func (e *Encoder) appendList(buf []byte, l *tag.List, depth int) ([]byte, error) {
	if depth > e.cfg.maxDepth {
		return nil, fmt.Errorf("%w: depth %d", errs.ErrMaxDepthExceeded, depth)
	}

	elemType := l.ElemType()
	n := l.Len()
	if n > 0 && elemType == format.TagEnd {
		return nil, fmt.Errorf("%w: list of End with %d elements", errs.ErrInvalidType, n)
	}

	buf = append(buf, byte(elemType))
	buf, err := e.appendLength(buf, n)
	if err != nil {
		return nil, err
	}

	for i, v := range l.All() {
		if tag.IsNil(v) {
			return nil, fmt.Errorf("%w: list element %d", errs.ErrNilTag, i)
		}
		if v.Type() != elemType {
			return nil, fmt.Errorf("%w: list of %s holds %s at %d", errs.ErrListTypeMismatch, elemType, v.Type(), i)
		}
		if buf, err = e.appendPayload(buf, v, depth+1); err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
	}

	return buf, nil
}

// appendPayload appends the payload of t without its type byte or name.
func (e *Encoder) appendPayload(buf []byte, t tag.Tag, depth int) ([]byte, error) {
	var err error

	switch v := t.(type) {
	case *tag.Byte:
		buf = append(buf, byte(v.Value))
	case *tag.Short:
		buf = e.engine.AppendUint16(buf, uint16(v.Value))
	case *tag.Int:
		buf = e.engine.AppendUint32(buf, uint32(v.Value))
	case *tag.Long:
		buf = e.engine.AppendUint64(buf, uint64(v.Value))
	case *tag.Float:
		buf = endian.AppendFloat32(e.engine, buf, v.Value)
	case *tag.Double:
		buf = endian.AppendFloat64(e.engine, buf, v.Value)
	case *tag.String:
		buf, err = e.appendString(buf, v.Value)
	case *tag.ByteArray:
		if buf, err = e.appendLength(buf, len(v.Value)); err == nil {
			for _, b := range v.Value {
				buf = append(buf, byte(b))
			}
		}
	case *tag.IntArray:
		if buf, err = e.appendLength(buf, len(v.Value)); err == nil {
			for _, x := range v.Value {
				buf = e.engine.AppendUint32(buf, uint32(x))
			}
		}
	case *tag.LongArray:
		if buf, err = e.appendLength(buf, len(v.Value)); err == nil {
			for _, x := range v.Value {
				buf = e.engine.AppendUint64(buf, uint64(x))
			}
		}
	case *tag.List:
		buf, err = e.appendList(buf, v, depth)
	case *tag.Compound:
		buf, err = e.appendCompound(buf, v, depth)
	default:
		err = fmt.Errorf("%w: unsupported tag %T", errs.ErrInvalidType, t)
	}

	if err != nil {
		return nil, err
	}

	return buf, nil
}

func (e *Encoder) appendString(buf []byte, s string) ([]byte, error) {
	if len(s) > tag.MaxStringLength {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrStringTooLong, len(s), tag.MaxStringLength)
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidUTF8, s)
	}

	buf = e.engine.AppendUint16(buf, uint16(len(s)))

	return append(buf, s...), nil
}

func (e *Encoder) appendLength(buf []byte, n int) ([]byte, error) {
	if n > tag.MaxArrayLength {
		return nil, fmt.Errorf("%w: %d elements exceeds %d", errs.ErrInvalidLength, n, tag.MaxArrayLength)
	}

	return e.engine.AppendUint32(buf, uint32(n)), nil
}

// rootTag avoids turning a nil *tag.Compound into a non-nil interface.
func rootTag(doc Document) tag.Tag {
	if doc.Root == nil {
		return nil
	}

	return doc.Root
}
