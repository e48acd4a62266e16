// Package tag provides the in-memory model of an NBT tree.
//
// A tree is built from twelve value variants, each a small struct implementing
// the Tag interface:
//
//	*Byte, *Short, *Int, *Long, *Float, *Double   scalars
//	*String                                       UTF-8 text
//	*ByteArray, *IntArray, *LongArray              typed arrays
//	*List                                         homogeneous sequence
//	*Compound                                     named entries
//
// The wire-level End marker has no variant: it cannot be constructed or
// observed inside a tree.
//
// # Accessors
//
// Every variant has a read accessor and a mutable accessor. Both report a
// variant mismatch by returning an absent result instead of panicking, so
// callers can branch on the result:
//
//	if v, ok := tag.AsInt(t); ok {
//	    fmt.Println("int", v)
//	}
//
//	if p := tag.IntRef(t); p != nil {
//	    *p++ // mutates the tree in place
//	}
//
// # Ordering
//
// Compound preserves insertion order. Replacing an existing key keeps its
// position, so a decoded tree re-encodes to the same bytes.
//
// # Thread Safety
//
// A tree may be walked concurrently by readers. Mutation requires external
// synchronization.
package tag
