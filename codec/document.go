package codec

import (
	"github.com/arloliu/nbt/tag"
)

// Document is a decoded NBT file: the root compound and the name that
// precedes it on the wire. The name is usually empty.
type Document struct {
	Name string
	Root *tag.Compound
}

// NewDocument creates a document with an empty root compound.
func NewDocument(name string) Document {
	return Document{Name: name, Root: tag.NewCompound()}
}

// CountElements returns the leaf count of the root compound.
func (d Document) CountElements() int {
	if d.Root == nil {
		return 0
	}

	return tag.CountElements(d.Root)
}
