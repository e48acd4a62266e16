package tag

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
)

// List is an ordered sequence of tags that all share one element type.
//
// An empty list may declare TagEnd as its element type when the type is
// unknown; such a list adopts the type of the first element appended to it.
// A non-empty list never has element type TagEnd.
type List struct {
	elemType format.TagType
	elems    []Tag
}

func (*List) Type() format.TagType { return format.TagList }
func (*List) isTag()               {}

// NewList creates an empty list declaring elemType.
//
// Parameters:
//   - elemType: Element type code; TagEnd leaves the type open
//
// Returns:
//   - *List: Empty list; an invalid type code is treated as TagEnd
func NewList(elemType format.TagType) *List {
	if !elemType.Valid() {
		elemType = format.TagEnd
	}

	return &List{elemType: elemType}
}

// NewListOf creates a list from elems. The element type is taken from the
// first element; every other element must match it.
//
// Returns:
//   - *List: New list holding elems
//   - error: ErrNilTag or ErrListTypeMismatch
func NewListOf(elems ...Tag) (*List, error) {
	l := &List{elems: make([]Tag, 0, len(elems))}
	for _, t := range elems {
		if err := l.Append(t); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// ElemType returns the declared element type.
func (l *List) ElemType() format.TagType {
	return l.elemType
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.elems)
}

// At returns the element at index i, or nil when i is out of range.
func (l *List) At(i int) Tag {
	if i < 0 || i >= len(l.elems) {
		return nil
	}

	return l.elems[i]
}

// Elements returns the underlying element slice. The caller must not modify it.
func (l *List) Elements() []Tag {
	return l.elems
}

// All returns an iterator over index and element pairs.
func (l *List) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range l.elems {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Append adds t to the end of the list.
//
// Returns:
//   - error: ErrNilTag for a nil tag, ErrListTypeMismatch when t does not
//     match the declared element type
func (l *List) Append(t Tag) error {
	if err := l.accept(t); err != nil {
		return err
	}
	l.elems = append(l.elems, t)

	return nil
}

// Set replaces the element at index i.
func (l *List) Set(i int, t Tag) error {
	if i < 0 || i >= len(l.elems) {
		return fmt.Errorf("list index %d out of range [0, %d)", i, len(l.elems))
	}
	if err := l.accept(t); err != nil {
		return err
	}
	l.elems[i] = t

	return nil
}

// Remove deletes the element at index i. The declared element type is kept
// even when the list becomes empty.
func (l *List) Remove(i int) {
	if i < 0 || i >= len(l.elems) {
		return
	}
	l.elems = slices.Delete(l.elems, i, i+1)
}

func (l *List) accept(t Tag) error {
	if IsNil(t) {
		return errs.ErrNilTag
	}

	typ := t.Type()
	if l.elemType == format.TagEnd && len(l.elems) == 0 {
		l.elemType = typ
		return nil
	}

	if typ != l.elemType {
		return fmt.Errorf("%w: list of %s cannot hold %s", errs.ErrListTypeMismatch, l.elemType, typ)
	}

	return nil
}

func (l *List) String() string {
	return formatSeq(len(l.elems), func(sb *strings.Builder, i int) {
		sb.WriteString(render(l.elems[i]))
	})
}

// newListWithCap is used by Clone to size the element slice up front.
func newListWithCap(elemType format.TagType, n int) *List {
	return &List{elemType: elemType, elems: make([]Tag, 0, n)}
}
