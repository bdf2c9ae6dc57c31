package kicad

import (
	"fmt"

	"github.com/SparkyTD/jlcrs/sexp"
)

// PadShape is the closed enumeration of footprint pad shapes, per spec.md §3.
type PadShape string

const (
	PadCircle    PadShape = "circle"
	PadRect      PadShape = "rect"
	PadOval      PadShape = "oval"
	PadTrapezoid PadShape = "trapezoid"
	PadRoundRect PadShape = "roundrect"
	PadCustom    PadShape = "custom"
)

// PadKind is the pad's mount/electrical kind.
type PadKind string

const (
	PadThruHole   PadKind = "thru_hole"
	PadSMD        PadKind = "smd"
	PadConnect    PadKind = "connect"
	PadNPThruHole PadKind = "np_thru_hole"
)

// DrillShape is the through-hole drill's shape: a plain round hole, or an
// oval (slot) hole with independent width/height, per spec.md §3.
type DrillShape string

const (
	DrillRound DrillShape = "round"
	DrillOval  DrillShape = "oval"
)

// DrillDefinition describes a pad's drill, per spec.md §3.
type DrillDefinition struct {
	Shape  DrillShape
	Width  float64
	Height float64 // only meaningful when Shape == DrillOval
	Offset *Position
}

func (d DrillDefinition) serialize() *sexp.Node {
	n := sexp.NewNode("drill")
	if d.Shape == DrillOval {
		n.Ident("oval")
		n.Num(d.Width)
		n.Num(d.Height)
	} else {
		n.Num(d.Width)
	}
	if d.Offset != nil {
		off := sexp.NewNode("offset").Num(d.Offset.X).Num(d.Offset.Y)
		n.Child(off)
	}
	return n
}

func deserializeDrill(n *sexp.Node) (DrillDefinition, error) {
	var d DrillDefinition
	idx := 0
	if a, ok := n.ArgAt(0); ok && a.AsIdent() == "oval" {
		d.Shape = DrillOval
		idx = 1
		w, err := argFloat(n, idx)
		if err != nil {
			return d, err
		}
		h, err := argFloat(n, idx+1)
		if err != nil {
			return d, err
		}
		d.Width, d.Height = w, h
	} else {
		d.Shape = DrillRound
		w, err := argFloat(n, 0)
		if err != nil {
			return d, err
		}
		d.Width = w
	}
	if off, ok := n.Find("offset"); ok {
		x, _ := argFloat(off, 0)
		y, _ := argFloat(off, 1)
		d.Offset = &Position{X: x, Y: y}
	}
	return d, nil
}

// FootprintPad is a single pad of a footprint, grounded on the teacher's
// FootprintPad struct in pcb.go (now adapted to this package's node model
// and spec.md's richer pad vocabulary).
type FootprintPad struct {
	Name               string
	Kind               PadKind
	Shape              PadShape
	Position           Position
	SizeW, SizeH       float64
	Drill              *DrillDefinition
	Layers             []PcbLayer
	RemoveUnusedLayers bool
	RoundRectRRatio    *float64
	NetIndex           int
	NetName            string
	PinFunction        string
	PinType            string
	SolderMaskMargin   *float64
	SolderPasteMargin  *float64
}

func (p FootprintPad) Serialize() *sexp.Node {
	n := sexp.NewNode("pad").Str(p.Name)
	n.Ident(string(p.Kind))
	n.Ident(string(p.Shape))
	at := sexp.NewNode("at")
	p.Position.argsInto(at)
	n.Child(at)
	n.Child(sexp.NewNode("size").Num(p.SizeW).Num(p.SizeH))
	if p.Drill != nil {
		n.Child(p.Drill.serialize())
	}
	layerNames := SerializeLayerList(p.Layers)
	layersNode := sexp.NewNode("layers")
	for _, l := range layerNames {
		layersNode.Ident(l)
	}
	n.Child(layersNode)
	if p.RemoveUnusedLayers {
		n.Child(sexp.NewNode("remove_unused_layers").Ident(boolYesNo(true)))
	}
	if p.RoundRectRRatio != nil {
		n.Child(sexp.NewNode("roundrect_rratio").Num(*p.RoundRectRRatio))
	}
	if p.NetIndex != 0 || p.NetName != "" {
		n.Child(sexp.NewNode("net").Num(float64(p.NetIndex)).Str(p.NetName))
	}
	if p.PinFunction != "" {
		n.Child(sexp.NewNode("pinfunction").Str(p.PinFunction))
	}
	if p.PinType != "" {
		n.Child(sexp.NewNode("pintype").Str(p.PinType))
	}
	if p.SolderMaskMargin != nil {
		n.Child(sexp.NewNode("solder_mask_margin").Num(*p.SolderMaskMargin))
	}
	if p.SolderPasteMargin != nil {
		n.Child(sexp.NewNode("solder_paste_margin").Num(*p.SolderPasteMargin))
	}
	return n
}

func DeserializeFootprintPad(n *sexp.Node) (FootprintPad, error) {
	var p FootprintPad
	name, err := argString(n, 0)
	if err != nil {
		return p, err
	}
	p.Name = name
	if a, ok := n.ArgAt(1); ok {
		p.Kind = PadKind(a.AsIdent())
	}
	if a, ok := n.ArgAt(2); ok {
		p.Shape = PadShape(a.AsIdent())
	}
	at, ok := n.Find("at")
	if ok {
		pos, err := parsePositionArgs(at)
		if err != nil {
			return p, err
		}
		p.Position = pos
	}
	if sz, ok := n.Find("size"); ok {
		p.SizeW, _ = argFloat(sz, 0)
		p.SizeH, _ = argFloat(sz, 1)
	}
	if dr, ok := n.Find("drill"); ok {
		d, err := deserializeDrill(dr)
		if err != nil {
			return p, err
		}
		p.Drill = &d
	}
	if ls, ok := n.Find("layers"); ok {
		var names []string
		for _, a := range ls.Arguments {
			names = append(names, a.AsIdent())
		}
		layers, err := ParseLayerList(names)
		if err != nil {
			return p, err
		}
		p.Layers = layers
	}
	if ru, ok := n.Find("remove_unused_layers"); ok {
		v, _ := argString(ru, 0)
		p.RemoveUnusedLayers = parseYesNo(v)
	}
	if rr, ok := n.Find("roundrect_rratio"); ok {
		v, err := argFloat(rr, 0)
		if err == nil {
			p.RoundRectRRatio = &v
		}
	}
	if net, ok := n.Find("net"); ok {
		idx, _ := argInt(net, 0)
		nm, _ := argString(net, 1)
		p.NetIndex, p.NetName = idx, nm
	}
	if pf, ok := n.Find("pinfunction"); ok {
		v, _ := argString(pf, 0)
		p.PinFunction = v
	}
	if pt, ok := n.Find("pintype"); ok {
		v, _ := argString(pt, 0)
		p.PinType = v
	}
	if smm, ok := n.Find("solder_mask_margin"); ok {
		v, err := argFloat(smm, 0)
		if err == nil {
			p.SolderMaskMargin = &v
		}
	}
	if spm, ok := n.Find("solder_paste_margin"); ok {
		v, err := argFloat(spm, 0)
		if err == nil {
			p.SolderPasteMargin = &v
		}
	}
	return p, nil
}

// FootprintCircle, FootprintLine and FootprintText are the graphical
// primitives a footprint may carry outside its pads, grounded on the
// teacher's FootprintCircle/GraphicsLine/FootprintText structs.
type FootprintCircle struct {
	Center, End Position
	Stroke      StrokeDefinition
	Fill        FillType
	Layer       PcbLayer
}

func (c FootprintCircle) Serialize() *sexp.Node {
	n := sexp.NewNode("fp_circle")
	n.Child(sexp.NewNode("center").Num(c.Center.X).Num(c.Center.Y))
	n.Child(sexp.NewNode("end").Num(c.End.X).Num(c.End.Y))
	n.Child(c.Stroke.Serialize())
	n.Child(c.Fill.serialize())
	n.Child(sexp.NewNode("layer").Str(string(c.Layer)))
	return n
}

func deserializeFootprintCircle(n *sexp.Node) (FootprintCircle, error) {
	var c FootprintCircle
	if ctr, ok := n.Find("center"); ok {
		c.Center.X, _ = argFloat(ctr, 0)
		c.Center.Y, _ = argFloat(ctr, 1)
	}
	if e, ok := n.Find("end"); ok {
		c.End.X, _ = argFloat(e, 0)
		c.End.Y, _ = argFloat(e, 1)
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
	if l, ok := n.Find("layer"); ok {
		v, err := argString(l, 0)
		if err == nil {
			c.Layer = PcbLayer(v)
		}
	}
	return c, nil
}

type FootprintLine struct {
	Start, End Position
	Stroke     StrokeDefinition
	Layer      PcbLayer
}

func (l FootprintLine) Serialize() *sexp.Node {
	n := sexp.NewNode("fp_line")
	n.Child(sexp.NewNode("start").Num(l.Start.X).Num(l.Start.Y))
	n.Child(sexp.NewNode("end").Num(l.End.X).Num(l.End.Y))
	n.Child(l.Stroke.Serialize())
	n.Child(sexp.NewNode("layer").Str(string(l.Layer)))
	return n
}

func deserializeFootprintLine(n *sexp.Node) (FootprintLine, error) {
	var l FootprintLine
	if s, ok := n.Find("start"); ok {
		l.Start.X, _ = argFloat(s, 0)
		l.Start.Y, _ = argFloat(s, 1)
	}
	if e, ok := n.Find("end"); ok {
		l.End.X, _ = argFloat(e, 0)
		l.End.Y, _ = argFloat(e, 1)
	}
	if st, ok := n.Find("stroke"); ok {
		sd, err := DeserializeStroke(st)
		if err != nil {
			return l, err
		}
		l.Stroke = sd
	}
	if ly, ok := n.Find("layer"); ok {
		v, err := argString(ly, 0)
		if err == nil {
			l.Layer = PcbLayer(v)
		}
	}
	return l, nil
}

// FootprintArc is a three-point arc graphic, grounded on the teacher's
// FootprintArc shape and extended for the arc-centre reconstruction
// translate/path.go performs.
type FootprintArc struct {
	Start, Mid, End Position
	Stroke          StrokeDefinition
	Layer           PcbLayer
}

func (a FootprintArc) Serialize() *sexp.Node {
	n := sexp.NewNode("fp_arc")
	n.Child(sexp.NewNode("start").Num(a.Start.X).Num(a.Start.Y))
	n.Child(sexp.NewNode("mid").Num(a.Mid.X).Num(a.Mid.Y))
	n.Child(sexp.NewNode("end").Num(a.End.X).Num(a.End.Y))
	n.Child(a.Stroke.Serialize())
	n.Child(sexp.NewNode("layer").Str(string(a.Layer)))
	return n
}

func deserializeFootprintArc(n *sexp.Node) (FootprintArc, error) {
	var a FootprintArc
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
	if ly, ok := n.Find("layer"); ok {
		v, err := argString(ly, 0)
		if err == nil {
			a.Layer = PcbLayer(v)
		}
	}
	return a, nil
}

// FootprintPolygon is a closed or open point list, used both for hollow
// silkscreen/fab outlines (fill=false) and mechanical NPTH exclusion zones
// (Edge.Cuts, fill irrelevant) per spec.md §4.7.
type FootprintPolygon struct {
	Points []Position
	Stroke StrokeDefinition
	Fill   bool
	Layer  PcbLayer
}

func (p FootprintPolygon) Serialize() *sexp.Node {
	n := sexp.NewNode("fp_poly")
	pts := sexp.NewNode("pts")
	for _, pt := range p.Points {
		pts.Child(sexp.NewNode("xy").Num(pt.X).Num(pt.Y))
	}
	n.Child(pts)
	n.Child(p.Stroke.Serialize())
	n.Child(sexp.NewNode("fill").Ident(boolYesNo(p.Fill)))
	n.Child(sexp.NewNode("layer").Str(string(p.Layer)))
	return n
}

func deserializeFootprintPolygon(n *sexp.Node) (FootprintPolygon, error) {
	var p FootprintPolygon
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
		v, _ := argString(f, 0)
		p.Fill = parseYesNo(v)
	}
	if ly, ok := n.Find("layer"); ok {
		v, err := argString(ly, 0)
		if err == nil {
			p.Layer = PcbLayer(v)
		}
	}
	return p, nil
}

type FootprintTextKind string

const (
	TextReference FootprintTextKind = "reference"
	TextValue     FootprintTextKind = "value"
	TextUser      FootprintTextKind = "user"
)

type FootprintText struct {
	Kind     FootprintTextKind
	Text     string
	Position Position
	Layer    PcbLayer
	Effects  TextEffect
	Hide     bool
}

func (t FootprintText) Serialize() *sexp.Node {
	n := sexp.NewNode("fp_text")
	n.Ident(string(t.Kind))
	n.Str(t.Text)
	at := sexp.NewNode("at")
	t.Position.argsInto(at)
	n.Child(at)
	n.Child(sexp.NewNode("layer").Str(string(t.Layer)))
	if t.Hide {
		n.Children = append(n.Children, sexp.Node{Name: "hide"})
	}
	n.Child(t.Effects.Serialize())
	return n
}

func deserializeFootprintText(n *sexp.Node) (FootprintText, error) {
	var t FootprintText
	if a, ok := n.ArgAt(0); ok {
		t.Kind = FootprintTextKind(a.AsIdent())
	}
	txt, err := argString(n, 1)
	if err != nil {
		return t, err
	}
	t.Text = txt
	if at, ok := n.Find("at"); ok {
		pos, err := parsePositionArgs(at)
		if err != nil {
			return t, err
		}
		t.Position = pos
	}
	if ly, ok := n.Find("layer"); ok {
		v, err := argString(ly, 0)
		if err == nil {
			t.Layer = PcbLayer(v)
		}
	}
	if _, ok := n.Find("hide"); ok {
		t.Hide = true
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

// FootprintProperty mirrors the teacher's Property struct, generalized to
// this package's types.
type FootprintProperty struct {
	Key      string
	Value    string
	Position Position
	Layer    PcbLayer
	Unlocked bool
	Hide     bool
	Effects  TextEffect
}

func (p FootprintProperty) Serialize() *sexp.Node {
	n := sexp.NewNode("property").Str(p.Key).Str(p.Value)
	at := sexp.NewNode("at")
	p.Position.argsInto(at)
	n.Child(at)
	n.Child(sexp.NewNode("layer").Str(string(p.Layer)))
	if p.Unlocked {
		n.Child(sexp.NewNode("unlocked").Ident(boolYesNo(true)))
	}
	if p.Hide {
		n.Children = append(n.Children, sexp.Node{Name: "hide"})
	}
	n.Child(p.Effects.Serialize())
	return n
}

func deserializeFootprintProperty(n *sexp.Node) (FootprintProperty, error) {
	var p FootprintProperty
	k, err := argString(n, 0)
	if err != nil {
		return p, err
	}
	v, err := argString(n, 1)
	if err != nil {
		return p, err
	}
	p.Key, p.Value = k, v
	if at, ok := n.Find("at"); ok {
		pos, err := parsePositionArgs(at)
		if err != nil {
			return p, err
		}
		p.Position = pos
	}
	if ly, ok := n.Find("layer"); ok {
		s, err := argString(ly, 0)
		if err == nil {
			p.Layer = PcbLayer(s)
		}
	}
	if un, ok := n.Find("unlocked"); ok {
		s, _ := argString(un, 0)
		p.Unlocked = parseYesNo(s)
	}
	if _, ok := n.Find("hide"); ok {
		p.Hide = true
	}
	if eff, ok := n.Find("effects"); ok {
		e, err := DeserializeEffects(eff)
		if err != nil {
			return p, err
		}
		p.Effects = e
	}
	return p, nil
}

// Footprint is a single `.kicad_mod` document or embedded `footprint`
// record, grounded on the teacher's Footprint struct in pcb.go, extended
// per spec.md §3 with the pad/graphics vocabulary a translated EasyEDA
// footprint requires.
type Footprint struct {
	Name       string
	Layer      PcbLayer
	Descr      string
	Tags       string
	Attribute  string // "smd", "through_hole", or empty
	Properties []FootprintProperty
	Pads       []FootprintPad
	Circles    []FootprintCircle
	Lines      []FootprintLine
	Arcs       []FootprintArc
	Polygons   []FootprintPolygon
	Texts      []FootprintText
	Model      *FootprintModel
}

// FootprintModel is a `(model ...)` 3D model reference, path plus the
// offset/scale/rotate triples KiCad always emits alongside it.
type FootprintModel struct {
	Path                      string
	OffsetX, OffsetY, OffsetZ float64
	ScaleX, ScaleY, ScaleZ    float64
	RotateX, RotateY, RotateZ float64
}

func (m FootprintModel) Serialize() *sexp.Node {
	n := sexp.NewNode("model").Str(m.Path)
	xyz := func(name string, x, y, z float64) *sexp.Node {
		c := sexp.NewNode(name)
		c.Child(sexp.NewNode("xyz").Num(x).Num(y).Num(z))
		return c
	}
	n.Child(xyz("offset", m.OffsetX, m.OffsetY, m.OffsetZ))
	n.Child(xyz("scale", m.ScaleX, m.ScaleY, m.ScaleZ))
	n.Child(xyz("rotate", m.RotateX, m.RotateY, m.RotateZ))
	return n
}

func deserializeFootprintModel(n *sexp.Node) (FootprintModel, error) {
	var m FootprintModel
	path, err := argString(n, 0)
	if err != nil {
		return m, fmt.Errorf("kicad: model missing path: %w", err)
	}
	m.Path = path
	readXYZ := func(name string) (float64, float64, float64) {
		c, ok := n.Find(name)
		if !ok {
			return 0, 0, 0
		}
		xyz, ok := c.Find("xyz")
		if !ok {
			return 0, 0, 0
		}
		x, _ := argFloat(xyz, 0)
		y, _ := argFloat(xyz, 1)
		z, _ := argFloat(xyz, 2)
		return x, y, z
	}
	m.OffsetX, m.OffsetY, m.OffsetZ = readXYZ("offset")
	m.ScaleX, m.ScaleY, m.ScaleZ = readXYZ("scale")
	m.RotateX, m.RotateY, m.RotateZ = readXYZ("rotate")
	return m, nil
}

func (f Footprint) Serialize() *sexp.Node {
	n := sexp.NewNode("footprint").Str(f.Name)
	n.Child(sexp.NewNode("layer").Str(string(f.Layer)))
	if f.Descr != "" {
		n.Child(sexp.NewNode("descr").Str(f.Descr))
	}
	if f.Tags != "" {
		n.Child(sexp.NewNode("tags").Str(f.Tags))
	}
	if f.Attribute != "" {
		n.Child(sexp.NewNode("attr").Ident(f.Attribute))
	}
	for _, p := range f.Properties {
		n.Child(p.Serialize())
	}
	for _, t := range f.Texts {
		n.Child(t.Serialize())
	}
	for _, c := range f.Circles {
		n.Child(c.Serialize())
	}
	for _, l := range f.Lines {
		n.Child(l.Serialize())
	}
	for _, a := range f.Arcs {
		n.Child(a.Serialize())
	}
	for _, pg := range f.Polygons {
		n.Child(pg.Serialize())
	}
	for _, p := range f.Pads {
		n.Child(p.Serialize())
	}
	if f.Model != nil {
		n.Child(f.Model.Serialize())
	}
	return n
}

// DeserializeFootprint implements the deserialize(Node) -> R contract.
func DeserializeFootprint(n *sexp.Node) (Footprint, error) {
	var f Footprint
	name, err := argString(n, 0)
	if err != nil {
		return f, fmt.Errorf("kicad: footprint missing name: %w", err)
	}
	f.Name = name
	if ly, ok := n.Find("layer"); ok {
		v, err := argString(ly, 0)
		if err == nil {
			f.Layer = PcbLayer(v)
		}
	}
	if d, ok := n.Find("descr"); ok {
		v, _ := argString(d, 0)
		f.Descr = v
	}
	if t, ok := n.Find("tags"); ok {
		v, _ := argString(t, 0)
		f.Tags = v
	}
	if a, ok := n.Find("attr"); ok {
		v, _ := argString(a, 0)
		f.Attribute = v
	}

	for _, c := range n.Children {
		switch c.Name {
		case "property":
			p, err := deserializeFootprintProperty(&c)
			if err != nil {
				return f, err
			}
			f.Properties = append(f.Properties, p)
		case "fp_circle":
			fc, err := deserializeFootprintCircle(&c)
			if err != nil {
				return f, err
			}
			f.Circles = append(f.Circles, fc)
		case "fp_line":
			fl, err := deserializeFootprintLine(&c)
			if err != nil {
				return f, err
			}
			f.Lines = append(f.Lines, fl)
		case "fp_arc":
			fa, err := deserializeFootprintArc(&c)
			if err != nil {
				return f, err
			}
			f.Arcs = append(f.Arcs, fa)
		case "fp_poly":
			fpg, err := deserializeFootprintPolygon(&c)
			if err != nil {
				return f, err
			}
			f.Polygons = append(f.Polygons, fpg)
		case "fp_text":
			ft, err := deserializeFootprintText(&c)
			if err != nil {
				return f, err
			}
			f.Texts = append(f.Texts, ft)
		case "pad":
			fp, err := DeserializeFootprintPad(&c)
			if err != nil {
				return f, err
			}
			f.Pads = append(f.Pads, fp)
		case "model":
			m, err := deserializeFootprintModel(&c)
			if err != nil {
				return f, err
			}
			f.Model = &m
		case "layer", "descr", "tags", "attr":
			// already handled above
		default:
			if !OpaqueNodeNames[c.Name] {
				return f, &UnknownNode{Parent: "footprint", Child: c.Name}
			}
		}
	}
	return f, nil
}
