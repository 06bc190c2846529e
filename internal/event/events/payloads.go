package events

// AttributeChanged reports one applied attribute write.
type AttributeChanged struct {
	Store string
	Key   string
	Old   any
	New   any
}

// AttributeRejected reports a write that failed validation. The stored value
// is unchanged.
type AttributeRejected struct {
	Store  string
	Key    string
	Value  any
	Reason string
}

// UnknownAttribute reports a write to an undeclared key.
type UnknownAttribute struct {
	Store string
	Key   string
}

// DataKind classifies a data collection mutation.
type DataKind int

const (
	// DataReplace replaced the whole collection.
	DataReplace DataKind = iota
	// DataAdd added a series.
	DataAdd
	// DataRemove removed a series.
	DataRemove
	// DataAppend appended points to existing series.
	DataAppend
)

// String returns the kind name.
func (k DataKind) String() string {
	switch k {
	case DataReplace:
		return "replace"
	case DataAdd:
		return "add"
	case DataRemove:
		return "remove"
	case DataAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Structural reports whether the mutation changed the set of series.
func (k DataKind) Structural() bool {
	return k != DataAppend
}

// DataChanged reports a data collection mutation.
type DataChanged struct {
	Kind   DataKind
	Series []string
}

// BrushChanged reports a brush state transition.
type BrushChanged struct {
	Dragging bool
	Empty    bool
	Extent   [2]float64
}

// CursorMoved reports the data point under the cursor.
type CursorMoved struct {
	Hidden bool
	Series string
	Index  int
	X, Y   float64
}

// LayerRedrawn reports one scene flush.
type LayerRedrawn struct {
	Layers []string
	Full   bool
}

// StructureMismatch reports an inconsistency between related inputs, such
// as a legend whose label count differs from the series count.
type StructureMismatch struct {
	Component string
	Expected  int
	Actual    int
	Message   string
}
