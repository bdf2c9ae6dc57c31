// Package translate maps decoded EasyEDA symbol/footprint documents onto
// the Kicad object model in package kicad, per spec.md §4.6/§4.7. It owns
// every piece of domain judgment the decoders in package easyeda do not:
// unit layout, path-expression geometry, layer mapping and pad/via shape
// selection.
package translate

import "fmt"

// UnsupportedElement reports an EasyEDA element this translator
// deliberately does not support (e.g. Bezier curves, unequal-radius
// ellipses), per spec.md §4.6 item 5.
type UnsupportedElement struct {
	Kind string
}

func (e *UnsupportedElement) Error() string {
	return fmt.Sprintf("translate: unsupported element %q", e.Kind)
}

// UnsupportedPadShape reports a pad path expression whose leading command
// does not match any of RECT/ELLIPSE/OVAL.
type UnsupportedPadShape struct {
	Command string
}

func (e *UnsupportedPadShape) Error() string {
	return fmt.Sprintf("translate: unsupported pad shape command %q", e.Command)
}

// UnsupportedLayer reports an EasyEDA layer id with no Kicad counterpart.
type UnsupportedLayer struct {
	LayerID string
}

func (e *UnsupportedLayer) Error() string {
	return fmt.Sprintf("translate: unsupported layer id %q", e.LayerID)
}

// UnsupportedInnerLayer reports a SIGNal inner-layer index outside Kicad's
// In1..In30 range.
type UnsupportedInnerLayer struct {
	Index int
}

func (e *UnsupportedInnerLayer) Error() string {
	return fmt.Sprintf("translate: inner layer index %d out of range [1,30]", e.Index)
}

// UnsupportedDrillRotation reports a pad hole rotation other than 0, 90,
// 180 or 270 degrees, which Kicad's drill model cannot express
// independently of the pad's own rotation.
type UnsupportedDrillRotation struct {
	Rotation float64
}

func (e *UnsupportedDrillRotation) Error() string {
	return fmt.Sprintf("translate: hole rotation %g not supported", e.Rotation)
}

// UnitLayout reports a malformed multi-unit symbol id, per spec.md §4.6
// item 4.
type UnitLayout struct {
	ID     string
	Reason string
}

func (e *UnitLayout) Error() string {
	return fmt.Sprintf("translate: symbol id %q has invalid unit layout: %s", e.ID, e.Reason)
}

// IncorrectUnitFormat, IncorrectUnitNumIdentifier and IncorrectUnitName
// are the three specific UnitLayout reasons spec.md §4.6 names.
const (
	IncorrectUnitFormat        = "expected BASE.N"
	IncorrectUnitNumIdentifier = "N is not a positive integer, or the units are not numbered 1..k"
	IncorrectUnitName          = "BASE differs across units"
)

func newUnitLayout(id, reason string) error {
	return &UnitLayout{ID: id, Reason: reason}
}
