package tag

// Read accessors return the payload and true, or the zero value and false
// when t is nil or holds another variant. Array accessors return the slice
// held by the tree; callers treat it as read-only and use the Ref form to mutate.

// AsByte returns the payload of a Byte tag.
func AsByte(t Tag) (int8, bool) {
	if v, ok := t.(*Byte); ok && v != nil {
		return v.Value, true
	}

	return 0, false
}

// AsShort returns the payload of a Short tag.
func AsShort(t Tag) (int16, bool) {
	if v, ok := t.(*Short); ok && v != nil {
		return v.Value, true
	}

	return 0, false
}

// AsInt returns the payload of an Int tag.
func AsInt(t Tag) (int32, bool) {
	if v, ok := t.(*Int); ok && v != nil {
		return v.Value, true
	}

	return 0, false
}

// AsLong returns the payload of a Long tag.
func AsLong(t Tag) (int64, bool) {
	if v, ok := t.(*Long); ok && v != nil {
		return v.Value, true
	}

	return 0, false
}

// AsFloat returns the payload of a Float tag.
func AsFloat(t Tag) (float32, bool) {
	if v, ok := t.(*Float); ok && v != nil {
		return v.Value, true
	}

	return 0, false
}

// AsDouble returns the payload of a Double tag.
func AsDouble(t Tag) (float64, bool) {
	if v, ok := t.(*Double); ok && v != nil {
		return v.Value, true
	}

	return 0, false
}

// AsString returns the payload of a String tag.
func AsString(t Tag) (string, bool) {
	if v, ok := t.(*String); ok && v != nil {
		return v.Value, true
	}

	return "", false
}

// AsByteArray returns the payload of a ByteArray tag.
func AsByteArray(t Tag) ([]int8, bool) {
	if v, ok := t.(*ByteArray); ok && v != nil {
		return v.Value, true
	}

	return nil, false
}

// AsIntArray returns the payload of an IntArray tag.
func AsIntArray(t Tag) ([]int32, bool) {
	if v, ok := t.(*IntArray); ok && v != nil {
		return v.Value, true
	}

	return nil, false
}

// AsLongArray returns the payload of a LongArray tag.
func AsLongArray(t Tag) ([]int64, bool) {
	if v, ok := t.(*LongArray); ok && v != nil {
		return v.Value, true
	}

	return nil, false
}

// AsList returns the list held by t.
// AsList returns t as a List.
func AsList(t Tag) (*List, bool) {
	l, ok := t.(*List)
	return l, ok && l != nil
}

// AsCompound returns the compound held by t.
// AsCompound returns t as a Compound.
func AsCompound(t Tag) (*Compound, bool) {
	c, ok := t.(*Compound)
	return c, ok && c != nil
}

// Mutable accessors return a pointer into the tree, or nil when t is nil or
// holds another variant. Writes through the pointer update the tree in place.

// ByteRef returns a pointer to the payload of a Byte tag.
func ByteRef(t Tag) *int8 {
	if v, ok := t.(*Byte); ok && v != nil {
		return &v.Value
	}

	return nil
}

// ShortRef returns a pointer to the payload of a Short tag.
func ShortRef(t Tag) *int16 {
	if v, ok := t.(*Short); ok && v != nil {
		return &v.Value
	}

	return nil
}

// IntRef returns a pointer to the payload of an Int tag.
func IntRef(t Tag) *int32 {
	if v, ok := t.(*Int); ok && v != nil {
		return &v.Value
	}

	return nil
}

// LongRef returns a pointer to the payload of a Long tag.
func LongRef(t Tag) *int64 {
	if v, ok := t.(*Long); ok && v != nil {
		return &v.Value
	}

	return nil
}

// FloatRef returns a pointer to the payload of a Float tag.
func FloatRef(t Tag) *float32 {
	if v, ok := t.(*Float); ok && v != nil {
		return &v.Value
	}

	return nil
}

// DoubleRef returns a pointer to the payload of a Double tag.
func DoubleRef(t Tag) *float64 {
	if v, ok := t.(*Double); ok && v != nil {
		return &v.Value
	}

	return nil
}

// StringRef returns a pointer to the payload of a String tag.
func StringRef(t Tag) *string {
	if v, ok := t.(*String); ok && v != nil {
		return &v.Value
	}

	return nil
}

// ByteArrayRef returns a pointer to the payload of a ByteArray tag.
func ByteArrayRef(t Tag) *[]int8 {
	if v, ok := t.(*ByteArray); ok && v != nil {
		return &v.Value
	}

	return nil
}

// IntArrayRef returns a pointer to the payload of an IntArray tag.
func IntArrayRef(t Tag) *[]int32 {
	if v, ok := t.(*IntArray); ok && v != nil {
		return &v.Value
	}

	return nil
}

// LongArrayRef returns a pointer to the payload of a LongArray tag.
func LongArrayRef(t Tag) *[]int64 {
	if v, ok := t.(*LongArray); ok && v != nil {
		return &v.Value
	}

	return nil
}

// ListRef returns the list held by t, or nil.
// ListRef returns t as a List, or nil.
func ListRef(t Tag) *List {
	l, _ := t.(*List)
	return l
}

// CompoundRef returns the compound held by t, or nil.
// CompoundRef returns t as a Compound, or nil.
func CompoundRef(t Tag) *Compound {
	c, _ := t.(*Compound)
	return c
}
