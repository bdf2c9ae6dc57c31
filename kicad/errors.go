package kicad

import "errors"

// ErrInvalidLayer is wrapped by ParseLayer when a token is not one of the
// exact textual forms in spec.md §3's layer alphabet.
var ErrInvalidLayer = errors.New("invalid pcb layer name")

// ConversionError reports a structural invariant of spec.md §3 being
// violated while building a record in memory (spec.md §7, "ConversionInternal").
type ConversionError struct {
	Record string
	Msg    string
}

func (e *ConversionError) Error() string {
	return "kicad: " + e.Record + ": " + e.Msg
}

// UnknownNode reports a child node name the target record does not
// recognize (spec.md §7). Whether this is fatal depends on the record:
// opaque decorative nodes (render_cache, teardrop, thermal_bridge_angle)
// are tolerated and simply dropped rather than returned as an error; see
// OpaqueNodeNames.
type UnknownNode struct {
	Parent string
	Child  string
}

func (e *UnknownNode) Error() string {
	return "kicad: unknown node " + e.Child + " inside " + e.Parent
}

// OpaqueNodeNames are child node names that are tolerated wherever they
// appear but never round-tripped, per spec.md §7 and §8 property 2.
var OpaqueNodeNames = map[string]bool{
	"render_cache":          true,
	"teardrop":              true,
	"thermal_bridge_angle":  true,
	"private_layers":        true,
	"net_tie_pad_groups":    true,
}
