// Package kicad defines the typed object model for Kicad symbol libraries,
// footprint libraries and library tables (spec.md §3), together with the
// serialize/deserialize pair each record exposes onto package sexp's Node
// tree (spec.md §4.4).
package kicad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SparkyTD/jlcrs/sexp"
)

// Color is an RGBA color with byte channels, per spec.md §3.
type Color struct {
	R, G, B, A byte
}

// ParseColorHex builds a Color from a hex string of 3, 4, 6 or 8 digits
// (with or without a leading '#'), per spec.md §8 property 4.
func ParseColorHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	expand := func(c byte) (byte, byte) {
		v, _ := strconv.ParseUint(string([]byte{c, c}), 16, 8)
		return byte(v), byte(v)
	}
	pairAt := func(s string, i int) (byte, error) {
		v, err := strconv.ParseUint(s[i:i+2], 16, 8)
		return byte(v), err
	}

	switch len(s) {
	case 3, 4:
		r, _ := expand(s[0])
		g, _ := expand(s[1])
		bch, _ := expand(s[2])
		a := byte(255)
		if len(s) == 4 {
			a, _ = expand(s[3])
		}
		return Color{R: r, G: g, B: bch, A: a}, nil
	case 6, 8:
		r, err := pairAt(s, 0)
		if err != nil {
			return Color{}, fmt.Errorf("kicad: invalid color %q: %w", s, err)
		}
		g, err := pairAt(s, 2)
		if err != nil {
			return Color{}, fmt.Errorf("kicad: invalid color %q: %w", s, err)
		}
		bch, err := pairAt(s, 4)
		if err != nil {
			return Color{}, fmt.Errorf("kicad: invalid color %q: %w", s, err)
		}
		a := byte(255)
		if len(s) == 8 {
			a, err = pairAt(s, 6)
			if err != nil {
				return Color{}, fmt.Errorf("kicad: invalid color %q: %w", s, err)
			}
		}
		return Color{R: r, G: g, B: bch, A: a}, nil
	default:
		return Color{}, fmt.Errorf("kicad: color %q must be 3, 4, 6 or 8 hex digits", s)
	}
}

// ToHex renders c as a lowercase 8-digit hex string, the normalized form
// used by ParseColorHex's round-trip property (spec.md §8 property 4).
func (c Color) ToHex() string {
	return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// DashStyle enumerates StrokeDefinition's line-dash kinds, per spec.md §3.
type DashStyle string

const (
	DashSolid      DashStyle = "solid"
	DashDash       DashStyle = "dash"
	DashDashDot    DashStyle = "dash_dot"
	DashDashDotDot DashStyle = "dash_dot_dot"
	DashDot        DashStyle = "dot"
	DashDefault    DashStyle = "default"
)

// StrokeDefinition describes a line/outline's appearance, per spec.md §3.
type StrokeDefinition struct {
	Width float64
	Dash  DashStyle // empty means unspecified
	Color *Color
}

// Serialize implements the serialize(R) -> Node contract of spec.md §4.4.
func (s StrokeDefinition) Serialize() *sexp.Node {
	n := sexp.NewNode("stroke")
	n.Child(sexp.NewNode("width").Num(s.Width))
	if s.Dash != "" {
		n.Child(sexp.NewNode("type").Ident(string(s.Dash)))
	} else {
		n.Child(sexp.NewNode("type").Ident(string(DashDefault)))
	}
	if s.Color != nil {
		n.Child(colorNode("color", *s.Color))
	}
	return n
}

// DeserializeStroke implements the deserialize(Node) -> R contract.
func DeserializeStroke(n *sexp.Node) (StrokeDefinition, error) {
	var s StrokeDefinition
	if w, ok := n.Find("width"); ok {
		v, err := argFloat(w, 0)
		if err != nil {
			return s, err
		}
		s.Width = v
	}
	if t, ok := n.Find("type"); ok {
		if a, ok := t.ArgAt(0); ok {
			s.Dash = DashStyle(a.AsIdent())
		}
	}
	if c, ok := n.Find("color"); ok {
		col, err := parseColorNode(c)
		if err != nil {
			return s, err
		}
		s.Color = &col
	}
	return s, nil
}

func colorNode(name string, c Color) *sexp.Node {
	return sexp.NewNode(name).Num(float64(c.R)).Num(float64(c.G)).Num(float64(c.B)).Num(float64(c.A) / 255.0)
}

func parseColorNode(n *sexp.Node) (Color, error) {
	r, err := argFloat(n, 0)
	if err != nil {
		return Color{}, err
	}
	g, err := argFloat(n, 1)
	if err != nil {
		return Color{}, err
	}
	b, err := argFloat(n, 2)
	if err != nil {
		return Color{}, err
	}
	a, err := argFloat(n, 3)
	if err != nil {
		a = 1
	}
	return Color{R: byte(r), G: byte(g), B: byte(b), A: byte(a * 255)}, nil
}

// Position is a 2D coordinate with an optional rotation angle in degrees,
// per spec.md §3.
type Position struct {
	X, Y  float64
	Angle *float64
}

// argsInto renders p as the body of an `at` node (caller supplies the name
// for `start`/`end`/`center`/`mid` nodes, which share this shape).
func (p Position) argsInto(n *sexp.Node) *sexp.Node {
	n.Num(p.X).Num(p.Y)
	if p.Angle != nil {
		n.Num(*p.Angle)
	}
	return n
}

func parsePositionArgs(n *sexp.Node) (Position, error) {
	var p Position
	x, err := argFloat(n, 0)
	if err != nil {
		return p, err
	}
	y, err := argFloat(n, 1)
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	if a, ok := n.ArgAt(2); ok {
		v, err := a.AsFloat()
		if err == nil {
			p.Angle = &v
		}
	}
	return p, nil
}

// FontSize is the width/height pair used by `(size w h)` nodes.
type FontSize struct {
	W, H float64
}

// Font describes a text font, per spec.md §3.
type Font struct {
	Face         string
	Size         FontSize
	Thickness    *float64
	Bold         bool
	Italic       bool
	LineSpacing  *float64
}

func (f Font) Serialize() *sexp.Node {
	n := sexp.NewNode("font")
	if f.Face != "" {
		n.Child(sexp.NewNode("face").Str(f.Face))
	}
	n.Child(sexp.NewNode("size").Num(f.Size.W).Num(f.Size.H))
	if f.Thickness != nil {
		n.Child(sexp.NewNode("thickness").Num(*f.Thickness))
	}
	if f.Bold {
		n.Children = append(n.Children, sexp.Node{Name: "bold"})
	}
	if f.Italic {
		n.Children = append(n.Children, sexp.Node{Name: "italic"})
	}
	if f.LineSpacing != nil {
		n.Child(sexp.NewNode("line_spacing").Num(*f.LineSpacing))
	}
	return n
}

func DeserializeFont(n *sexp.Node) (Font, error) {
	var f Font
	if face, ok := n.Find("face"); ok {
		if a, ok := face.ArgAt(0); ok {
			f.Face = a.Str
		}
	}
	if size, ok := n.Find("size"); ok {
		w, _ := argFloat(size, 0)
		h, _ := argFloat(size, 1)
		f.Size = FontSize{W: w, H: h}
	}
	if th, ok := n.Find("thickness"); ok {
		v, err := argFloat(th, 0)
		if err == nil {
			f.Thickness = &v
		}
	}
	if _, ok := n.Find("bold"); ok {
		f.Bold = true
	}
	if _, ok := n.Find("italic"); ok {
		f.Italic = true
	}
	if ls, ok := n.Find("line_spacing"); ok {
		v, err := argFloat(ls, 0)
		if err == nil {
			f.LineSpacing = &v
		}
	}
	return f, nil
}

// HAlign/VAlign enumerate TextJustify's horizontal/vertical bias.
type HAlign string
type VAlign string

const (
	HAlignCenter HAlign = ""
	HAlignLeft   HAlign = "left"
	HAlignRight  HAlign = "right"

	VAlignCenter VAlign = ""
	VAlignTop    VAlign = "top"
	VAlignBottom VAlign = "bottom"
)

// TextJustify describes text alignment, per spec.md §3.
type TextJustify struct {
	H      HAlign
	V      VAlign
	Mirror bool
}

func (j TextJustify) IsZero() bool {
	return j.H == HAlignCenter && j.V == VAlignCenter && !j.Mirror
}

func (j TextJustify) Serialize() *sexp.Node {
	n := sexp.NewNode("justify")
	if j.H != HAlignCenter {
		n.Ident(string(j.H))
	}
	if j.V != VAlignCenter {
		n.Ident(string(j.V))
	}
	if j.Mirror {
		n.Ident("mirror")
	}
	return n
}

func DeserializeJustify(n *sexp.Node) TextJustify {
	var j TextJustify
	for _, a := range n.Arguments {
		switch a.AsIdent() {
		case "left":
			j.H = HAlignLeft
		case "right":
			j.H = HAlignRight
		case "top":
			j.V = VAlignTop
		case "bottom":
			j.V = VAlignBottom
		case "mirror":
			j.Mirror = true
		}
	}
	return j
}

// TextEffect bundles a Font, optional TextJustify and hide flag, per
// spec.md §3.
type TextEffect struct {
	Font    Font
	Justify TextJustify
	Hide    bool
}

func (e TextEffect) Serialize() *sexp.Node {
	n := sexp.NewNode("effects")
	n.Child(e.Font.Serialize())
	if !e.Justify.IsZero() {
		n.Child(e.Justify.Serialize())
	}
	if e.Hide {
		n.Children = append(n.Children, sexp.Node{Name: "hide"})
	}
	return n
}

func DeserializeEffects(n *sexp.Node) (TextEffect, error) {
	var e TextEffect
	if fn, ok := n.Find("font"); ok {
		f, err := DeserializeFont(fn)
		if err != nil {
			return e, err
		}
		e.Font = f
	}
	if jn, ok := n.Find("justify"); ok {
		e.Justify = DeserializeJustify(jn)
	}
	if _, ok := n.Find("hide"); ok {
		e.Hide = true
	}
	return e, nil
}

// DefaultTextEffect is the 1.27x1.27mm default used whenever a translator
// needs to synthesize text effects (e.g. symbol pin labels) without a
// source style to copy, per the teacher's habit of small shared zero
// values rather than repeating literals at every call site.
var DefaultTextEffect = TextEffect{
	Font: Font{Size: FontSize{W: 1.27, H: 1.27}},
}

// argFloat reads the argument at index i of n and parses it as float64.
func argFloat(n *sexp.Node, i int) (float64, error) {
	a, ok := n.ArgAt(i)
	if !ok {
		return 0, fmt.Errorf("kicad: node %q missing argument %d", n.Name, i)
	}
	return a.AsFloat()
}

// argInt reads the argument at index i of n and parses it as int.
func argInt(n *sexp.Node, i int) (int, error) {
	a, ok := n.ArgAt(i)
	if !ok {
		return 0, fmt.Errorf("kicad: node %q missing argument %d", n.Name, i)
	}
	return a.AsInt()
}

// argString reads the argument at index i of n as a raw string (ident or
// quoted string payload).
func argString(n *sexp.Node, i int) (string, error) {
	a, ok := n.ArgAt(i)
	if !ok {
		return "", fmt.Errorf("kicad: node %q missing argument %d", n.Name, i)
	}
	return a.AsIdent(), nil
}

// boolYesNo renders a boolean as yes/no, the long-form encoding spec.md
// §4.4 describes.
func boolYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseYesNo(s string) bool {
	switch s {
	case "yes", "true", "solid":
		return true
	default:
		return false
	}
}
