package tag

// CountElements returns the number of scalar leaves reachable from t.
//
// Scalars and strings count as one leaf, typed arrays count one leaf per
// element, and lists and compounds count the sum of their children. A nil
// tag counts as zero.
func CountElements(t Tag) int {
	switch v := t.(type) {
	case *Byte, *Short, *Int, *Long, *Float, *Double, *String:
		return 1
	case *ByteArray:
		return len(v.Value)
	case *IntArray:
		return len(v.Value)
	case *LongArray:
		return len(v.Value)
	case *List:
		n := 0
		for _, e := range v.elems {
			n += CountElements(e)
		}

		return n
	case *Compound:
		n := 0
		for _, e := range v.values {
			n += CountElements(e)
		}

		return n
	default:
		return 0
	}
}
