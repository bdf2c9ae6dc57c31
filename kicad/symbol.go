package kicad

import (
	"fmt"

	"github.com/SparkyTD/jlcrs/sexp"
)

// FillType enumerates the fill keyword accepted by shape `fill` nodes. Per
// spec.md §4.4, `solid`/`hide`/`yes` and `none`/`no` are accepted
// symmetrically on read; FillType normalizes to the long form on write.
type FillType string

const (
	FillNone       FillType = "none"
	FillOutline    FillType = "outline"
	FillBackground FillType = "background"
)

func (f FillType) serialize() *sexp.Node {
	n := sexp.NewNode("fill")
	t := f
	if t == "" {
		t = FillNone
	}
	n.Child(sexp.NewNode("type").Ident(string(t)))
	return n
}

func deserializeFill(n *sexp.Node) FillType {
	if t, ok := n.Find("type"); ok {
		if a, ok := t.ArgAt(0); ok {
			switch a.AsIdent() {
			case "none", "no":
				return FillNone
			case "outline":
				return FillOutline
			case "background", "yes", "solid", "hide":
				return FillBackground
			}
		}
	}
	return FillNone
}

// ElectricalType enumerates a SymbolPin's electrical class.
type ElectricalType string

const (
	PinInput         ElectricalType = "input"
	PinOutput        ElectricalType = "output"
	PinBidirectional ElectricalType = "bidirectional"
	PinTriState      ElectricalType = "tri_state"
	PinPassive       ElectricalType = "passive"
	PinFree          ElectricalType = "free"
	PinUnspecified   ElectricalType = "unspecified"
	PinPower_In      ElectricalType = "power_in"
	PinPower_Out     ElectricalType = "power_out"
	PinOpenCollector ElectricalType = "open_collector"
	PinOpenEmitter   ElectricalType = "open_emitter"
	PinNotConnected  ElectricalType = "no_connect"
)

// GraphicStyle enumerates a SymbolPin's drawn shape.
type GraphicStyle string

const (
	PinLine          GraphicStyle = "line"
	PinInverted      GraphicStyle = "inverted"
	PinClock         GraphicStyle = "clock"
	PinInvertedClock GraphicStyle = "inverted_clock"
	PinInputLow      GraphicStyle = "input_low"
	PinClockLow      GraphicStyle = "clock_low"
	PinOutputLow     GraphicStyle = "output_low"
	PinEdgeClockHigh GraphicStyle = "edge_clock_high"
	PinNonLogic      GraphicStyle = "non_logic"
)

// SymbolPin is a single pin of a symbol unit, per spec.md §3.
type SymbolPin struct {
	ElectricalType ElectricalType
	GraphicStyle   GraphicStyle
	Position       Position
	Length         float64
	Name           *string
	NameEffects    TextEffect
	Number         *string
	NumberEffects  TextEffect
}

func (p SymbolPin) Serialize() *sexp.Node {
	n := sexp.NewNode("pin")
	n.Ident(string(p.ElectricalType))
	n.Ident(string(p.GraphicStyle))
	at := sexp.NewNode("at")
	p.Position.argsInto(at)
	n.Child(at)
	n.Child(sexp.NewNode("length").Num(p.Length))
	if p.Name != nil {
		nameNode := sexp.NewNode("name").Str(*p.Name)
		nameNode.Child(p.NameEffects.Serialize())
		n.Child(nameNode)
	}
	if p.Number != nil {
		numNode := sexp.NewNode("number").Str(*p.Number)
		numNode.Child(p.NumberEffects.Serialize())
		n.Child(numNode)
	}
	return n
}

func DeserializeSymbolPin(n *sexp.Node) (SymbolPin, error) {
	var p SymbolPin
	if a, ok := n.ArgAt(0); ok {
		p.ElectricalType = ElectricalType(a.AsIdent())
	}
	if a, ok := n.ArgAt(1); ok {
		p.GraphicStyle = GraphicStyle(a.AsIdent())
	}
	at, ok := n.Find("at")
	if !ok {
		return p, &ConversionError{Record: "pin", Msg: "missing at"}
	}
	pos, err := parsePositionArgs(at)
	if err != nil {
		return p, err
	}
	p.Position = pos
	if l, ok := n.Find("length"); ok {
		v, err := argFloat(l, 0)
		if err != nil {
			return p, err
		}
		p.Length = v
	}
	if nm, ok := n.Find("name"); ok {
		s, err := argString(nm, 0)
		if err != nil {
			return p, err
		}
		p.Name = &s
		if eff, ok := nm.Find("effects"); ok {
			e, err := DeserializeEffects(eff)
			if err != nil {
				return p, err
			}
			p.NameEffects = e
		}
	}
	if num, ok := n.Find("number"); ok {
		s, err := argString(num, 0)
		if err != nil {
			return p, err
		}
		p.Number = &s
		if eff, ok := num.Find("effects"); ok {
			e, err := DeserializeEffects(eff)
			if err != nil {
				return p, err
			}
			p.NumberEffects = e
		}
	}
	return p, nil
}

// SymbolRectangle, SymbolCircle, SymbolArc, SymbolPolyline, SymbolCurve and
// SymbolText are the graphical primitives a symbol unit may contain, per
// spec.md §3.
type SymbolRectangle struct {
	Start, End Position
	Stroke     StrokeDefinition
	Fill       FillType
}

func (r SymbolRectangle) Serialize() *sexp.Node {
	n := sexp.NewNode("rectangle")
	n.Child(sexp.NewNode("start").Num(r.Start.X).Num(r.Start.Y))
	n.Child(sexp.NewNode("end").Num(r.End.X).Num(r.End.Y))
	n.Child(r.Stroke.Serialize())
	n.Child(r.Fill.serialize())
	return n
}

func deserializeSymbolRectangle(n *sexp.Node) (SymbolRectangle, error) {
	var r SymbolRectangle
	if s, ok := n.Find("start"); ok {
		r.Start.X, _ = argFloat(s, 0)
		r.Start.Y, _ = argFloat(s, 1)
	}
	if e, ok := n.Find("end"); ok {
		r.End.X, _ = argFloat(e, 0)
		r.End.Y, _ = argFloat(e, 1)
	}
	if st, ok := n.Find("stroke"); ok {
		sd, err := DeserializeStroke(st)
		if err != nil {
			return r, err
		}
		r.Stroke = sd
	}
	if f, ok := n.Find("fill"); ok {
		r.Fill = deserializeFill(f)
	}
	return r, nil
}

type SymbolCircle struct {
	Center Position
	Radius float64
	Stroke StrokeDefinition
	Fill   FillType
}

func (c SymbolCircle) Serialize() *sexp.Node {
	n := sexp.NewNode("circle")
	n.Child(sexp.NewNode("center").Num(c.Center.X).Num(c.Center.Y))
	n.Child(sexp.NewNode("radius").Num(c.Radius))
	n.Child(c.Stroke.Serialize())
	n.Child(c.Fill.serialize())
	return n
}

func deserializeSymbolCircle(n *sexp.Node) (SymbolCircle, error) {
	var c SymbolCircle
	if ctr, ok := n.Find("center"); ok {
		c.Center.X, _ = argFloat(ctr, 0)
		c.Center.Y, _ = argFloat(ctr, 1)
	}
	if r, ok := n.Find("radius"); ok {
		c.Radius, _ = argFloat(r, 0)
	}
	if st, ok := n.Find("stroke"); ok {
		sd, err := DeserializeStroke(st)
		if err != nil {
			return c, err
		}
		c.Stroke = sd
	}
	if f, ok := n.Find("fill"); ok {
		c.Fill = deserializeFill(f)
	}
	return c, nil
}

type SymbolArc struct {
	Start, Mid, End Position
	Stroke          StrokeDefinition
	Fill            FillType
}

func (a SymbolArc) Serialize() *sexp.Node {
	n := sexp.NewNode("arc")
	n.Child(sexp.NewNode("start").Num(a.Start.X).Num(a.Start.Y))
	n.Child(sexp.NewNode("mid").Num(a.Mid.X).Num(a.Mid.Y))
	n.Child(sexp.NewNode("end").Num(a.End.X).Num(a.End.Y))
	n.Child(a.Stroke.Serialize())
	n.Child(a.Fill.serialize())
	return n
}

func deserializeSymbolArc(n *sexp.Node) (SymbolArc, error) {
	var a SymbolArc
	if s, ok := n.Find("start"); ok {
		a.Start.X, _ = argFloat(s, 0)
		a.Start.Y, _ = argFloat(s, 1)
	}
	if m, ok := n.Find("mid"); ok {
		a.Mid.X, _ = argFloat(m, 0)
		a.Mid.Y, _ = argFloat(m, 1)
	}
	if e, ok := n.Find("end"); ok {
		a.End.X, _ = argFloat(e, 0)
		a.End.Y, _ = argFloat(e, 1)
	}
	if st, ok := n.Find("stroke"); ok {
		sd, err := DeserializeStroke(st)
		if err != nil {
			return a, err
		}
		a.Stroke = sd
	}
	if f, ok := n.Find("fill"); ok {
		a.Fill = deserializeFill(f)
	}
	return a, nil
}

type SymbolPolyline struct {
	Points []Position
	Stroke StrokeDefinition
	Fill   FillType
}

func (p SymbolPolyline) Serialize() *sexp.Node {
	n := sexp.NewNode("polyline")
	pts := sexp.NewNode("pts")
	for _, pt := range p.Points {
		pts.Child(sexp.NewNode("xy").Num(pt.X).Num(pt.Y))
	}
	n.Child(pts)
	n.Child(p.Stroke.Serialize())
	n.Child(p.Fill.serialize())
	return n
}

func deserializeSymbolPolyline(n *sexp.Node) (SymbolPolyline, error) {
	var p SymbolPolyline
	if pts, ok := n.Find("pts"); ok {
		for _, xy := range pts.FindAll("xy") {
			x, _ := argFloat(xy, 0)
			y, _ := argFloat(xy, 1)
			p.Points = append(p.Points, Position{X: x, Y: y})
		}
	}
	if st, ok := n.Find("stroke"); ok {
		sd, err := DeserializeStroke(st)
		if err != nil {
			return p, err
		}
		p.Stroke = sd
	}
	if f, ok := n.Find("fill"); ok {
		p.Fill = deserializeFill(f)
	}
	return p, nil
}

// SymbolText is a free-standing text annotation inside a symbol unit.
type SymbolText struct {
	Text     string
	Position Position
	Effects  TextEffect
}

func (t SymbolText) Serialize() *sexp.Node {
	n := sexp.NewNode("text").Str(t.Text)
	at := sexp.NewNode("at")
	t.Position.argsInto(at)
	n.Child(at)
	n.Child(t.Effects.Serialize())
	return n
}

func deserializeSymbolText(n *sexp.Node) (SymbolText, error) {
	var t SymbolText
	s, err := argString(n, 0)
	if err != nil {
		return t, err
	}
	t.Text = s
	if at, ok := n.Find("at"); ok {
		pos, err := parsePositionArgs(at)
		if err != nil {
			return t, err
		}
		t.Position = pos
	}
	if eff, ok := n.Find("effects"); ok {
		e, err := DeserializeEffects(eff)
		if err != nil {
			return t, err
		}
		t.Effects = e
	}
	return t, nil
}

// SymbolProperty is a key/value property (Reference, Value, Footprint, ...)
// attached to a symbol, per spec.md §3.
type SymbolProperty struct {
	Key      string
	Value    string
	ID       int
	Position Position
	Effects  TextEffect
	Hide     bool
}

func (p SymbolProperty) Serialize() *sexp.Node {
	n := sexp.NewNode("property").Str(p.Key).Str(p.Value)
	n.Child(sexp.NewNode("id").Num(float64(p.ID)))
	at := sexp.NewNode("at")
	p.Position.argsInto(at)
	n.Child(at)
	eff := p.Effects
	if p.Hide {
		eff.Hide = true
	}
	n.Child(eff.Serialize())
	return n
}

func deserializeSymbolProperty(n *sexp.Node) (SymbolProperty, error) {
	var p SymbolProperty
	key, err := argString(n, 0)
	if err != nil {
		return p, err
	}
	val, err := argString(n, 1)
	if err != nil {
		return p, err
	}
	p.Key, p.Value = key, val
	if id, ok := n.Find("id"); ok {
		v, err := argInt(id, 0)
		if err == nil {
			p.ID = v
		}
	}
	if at, ok := n.Find("at"); ok {
		pos, err := parsePositionArgs(at)
		if err != nil {
			return p, err
		}
		p.Position = pos
	}
	if eff, ok := n.Find("effects"); ok {
		e, err := DeserializeEffects(eff)
		if err != nil {
			return p, err
		}
		p.Effects = e
		p.Hide = e.Hide
	}
	return p, nil
}

// Symbol is a single schematic symbol, possibly containing sub-`units`
// (spec.md §3). A multi-unit Symbol carries no graphical elements itself.
type Symbol struct {
	ID                string
	Extends           string
	InBOM             bool
	OnBoard           bool
	ExcludeFromSim    bool
	PinNamesHidden    bool
	PinNumbersHidden  bool
	PinNamesOffset    *float64
	Properties        []SymbolProperty
	Arcs              []SymbolArc
	Circles           []SymbolCircle
	Curves            []SymbolPolyline // bezier curves, kept as their control-point lists
	Rectangles        []SymbolRectangle
	Lines             []SymbolPolyline
	Texts             []SymbolText
	Pins              []SymbolPin
	Units             []Symbol
}

// Serialize implements the serialize(R) -> Node contract of spec.md §4.4.
func (s Symbol) Serialize() *sexp.Node {
	n := sexp.NewNode("symbol").Str(s.ID)
	if s.Extends != "" {
		n.Child(sexp.NewNode("extends").Str(s.Extends))
	}
	if len(s.Units) == 0 {
		n.Child(sexp.NewNode("in_bom").Ident(boolYesNo(s.InBOM)))
		n.Child(sexp.NewNode("on_board").Ident(boolYesNo(s.OnBoard)))
		if s.ExcludeFromSim {
			n.Child(sexp.NewNode("exclude_from_sim").Ident(boolYesNo(true)))
		}
	} else {
		n.Child(sexp.NewNode("in_bom").Ident(boolYesNo(s.InBOM)))
		n.Child(sexp.NewNode("on_board").Ident(boolYesNo(s.OnBoard)))
	}

	pn := sexp.NewNode("pin_names")
	if s.PinNamesOffset != nil {
		pn.Child(sexp.NewNode("offset").Num(*s.PinNamesOffset))
	}
	if s.PinNamesHidden {
		pn.Children = append(pn.Children, sexp.Node{Name: "hide"})
	}
	if s.PinNamesOffset != nil || s.PinNamesHidden {
		n.Child(pn)
	}
	if s.PinNumbersHidden {
		n.Child(sexp.NewNode("pin_numbers").Child(&sexp.Node{Name: "hide"}))
	}

	for _, p := range s.Properties {
		n.Child(p.Serialize())
	}
	for _, a := range s.Arcs {
		n.Child(a.Serialize())
	}
	for _, c := range s.Circles {
		n.Child(c.Serialize())
	}
	for _, c := range s.Curves {
		cn := c.Serialize()
		cn.Name = "bezier"
		n.Children = append(n.Children, *cn)
	}
	for _, r := range s.Rectangles {
		n.Child(r.Serialize())
	}
	for _, l := range s.Lines {
		n.Child(l.Serialize())
	}
	for _, t := range s.Texts {
		n.Child(t.Serialize())
	}
	for _, p := range s.Pins {
		n.Child(p.Serialize())
	}
	for _, u := range s.Units {
		n.Child(u.Serialize())
	}
	return n
}

// DeserializeSymbol implements the deserialize(Node) -> R contract.
func DeserializeSymbol(n *sexp.Node) (Symbol, error) {
	var s Symbol
	id, err := argString(n, 0)
	if err != nil {
		return s, fmt.Errorf("kicad: symbol missing id: %w", err)
	}
	s.ID = id

	if ex, ok := n.Find("extends"); ok {
		v, err := argString(ex, 0)
		if err != nil {
			return s, err
		}
		s.Extends = v
	}
	if ib, ok := n.Find("in_bom"); ok {
		v, err := argString(ib, 0)
		if err == nil {
			s.InBOM = parseYesNo(v)
		}
	}
	if ob, ok := n.Find("on_board"); ok {
		v, err := argString(ob, 0)
		if err == nil {
			s.OnBoard = parseYesNo(v)
		}
	}
	if _, ok := n.Find("exclude_from_sim"); ok {
		s.ExcludeFromSim = true
	}
	if pn, ok := n.Find("pin_names"); ok {
		if off, ok := pn.Find("offset"); ok {
			v, err := argFloat(off, 0)
			if err == nil {
				s.PinNamesOffset = &v
			}
		}
		if _, ok := pn.Find("hide"); ok {
			s.PinNamesHidden = true
		}
	}
	if pns, ok := n.Find("pin_numbers"); ok {
		if _, ok := pns.Find("hide"); ok {
			s.PinNumbersHidden = true
		}
	}

	for _, c := range n.Children {
		switch c.Name {
		case "property":
			p, err := deserializeSymbolProperty(&c)
			if err != nil {
				return s, err
			}
			s.Properties = append(s.Properties, p)
		case "arc":
			a, err := deserializeSymbolArc(&c)
			if err != nil {
				return s, err
			}
			s.Arcs = append(s.Arcs, a)
		case "circle":
			sc, err := deserializeSymbolCircle(&c)
			if err != nil {
				return s, err
			}
			s.Circles = append(s.Circles, sc)
		case "bezier":
			cv, err := deserializeSymbolPolyline(&c)
			if err != nil {
				return s, err
			}
			s.Curves = append(s.Curves, cv)
		case "rectangle":
			r, err := deserializeSymbolRectangle(&c)
			if err != nil {
				return s, err
			}
			s.Rectangles = append(s.Rectangles, r)
		case "polyline":
			l, err := deserializeSymbolPolyline(&c)
			if err != nil {
				return s, err
			}
			s.Lines = append(s.Lines, l)
		case "text":
			t, err := deserializeSymbolText(&c)
			if err != nil {
				return s, err
			}
			s.Texts = append(s.Texts, t)
		case "pin":
			p, err := DeserializeSymbolPin(&c)
			if err != nil {
				return s, err
			}
			s.Pins = append(s.Pins, p)
		case "symbol":
			u, err := DeserializeSymbol(&c)
			if err != nil {
				return s, err
			}
			s.Units = append(s.Units, u)
		case "extends", "in_bom", "on_board", "exclude_from_sim", "pin_names", "pin_numbers":
			// already handled above
		default:
			if !OpaqueNodeNames[c.Name] {
				return s, &UnknownNode{Parent: "symbol", Child: c.Name}
			}
		}
	}
	return s, nil
}

// SymbolLib is a top-level `.kicad_sym` document, per spec.md §6.
type SymbolLib struct {
	Version          int
	Generator        string
	GeneratorVersion string
	Symbols          []Symbol
}

func (l SymbolLib) Serialize() *sexp.Node {
	n := sexp.NewNode("kicad_symbol_lib")
	n.Child(sexp.NewNode("version").Num(float64(l.Version)))
	n.Child(sexp.NewNode("generator").Ident(l.Generator))
	if l.GeneratorVersion != "" {
		n.Child(sexp.NewNode("generator_version").Str(l.GeneratorVersion))
	}
	for _, s := range l.Symbols {
		n.Child(s.Serialize())
	}
	return n
}

// DeserializeSymbolLib implements the deserialize(Node) -> R contract for
// a full `kicad_symbol_lib` document.
func DeserializeSymbolLib(n *sexp.Node) (SymbolLib, error) {
	var l SymbolLib
	if n.Name != "kicad_symbol_lib" {
		return l, &ConversionError{Record: "kicad_symbol_lib", Msg: "unexpected top-level name " + n.Name}
	}
	if v, ok := n.Find("version"); ok {
		iv, err := argInt(v, 0)
		if err != nil {
			return l, err
		}
		l.Version = iv
	}
	if g, ok := n.Find("generator"); ok {
		s, err := argString(g, 0)
		if err != nil {
			return l, err
		}
		l.Generator = s
	}
	if gv, ok := n.Find("generator_version"); ok {
		s, err := argString(gv, 0)
		if err == nil {
			l.GeneratorVersion = s
		}
	}
	for _, c := range n.FindAll("symbol") {
		s, err := DeserializeSymbol(c)
		if err != nil {
			return l, err
		}
		l.Symbols = append(l.Symbols, s)
	}
	return l, nil
}
