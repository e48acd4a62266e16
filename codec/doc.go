// Package codec reads and writes the binary NBT wire format.
//
// A document is a single named compound:
//
//	0x0A | name_len:u16 | name | entries... | 0x00
//
// where every entry is `type:u8 | name_len:u16 | name | payload`. All
// multi-byte scalars are big-endian and every string is a u16 length prefix
// followed by UTF-8 bytes.
//
// # Decoding
//
//	dec, _ := codec.NewDecoder(r, codec.WithMaxDepth(64))
//	doc, err := dec.Decode()
//	if errors.Is(err, errs.ErrInvalidType) {
//	    // malformed input
//	}
//
// The decoder tolerates an end of stream in place of the root compound's
// terminator. An end of stream anywhere else, including inside a nested
// compound, is an error.
//
// # Encoding
//
//	enc, _ := codec.NewEncoder(w)
//	err := enc.Encode(codec.Document{Name: "", Root: root})
//
// Compound entries are written in insertion order unless WithSortedKeys is
// given. The encoder assembles the document in a pooled buffer and hands it
// to the sink with a single Write call.
//
// Compression envelopes are not handled here; see the compress package and
// the top-level nbt package.
package codec
