package easyeda

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// FootprintHead is the footprint HEAD record's inline JSON object.
type FootprintHead struct {
	EditorVersion string
	ImportFlag    int
	UUID          string
	Source        string
	Title         string
}

// Layer is a LAYER record describing one of the footprint's stackup
// layers, per footprint.rs's Layer.
type Layer struct {
	ID                  string
	LayerType           string
	Name                string
	Status              string
	ActiveColor         string
	ActiveTransparency  float64
	InactiveColor       string
	InactiveTransparency float64
}

// PhysicalLayer is a LAYER_PHYS record describing stackup thickness and
// material for one layer.
type PhysicalLayer struct {
	ID            string
	Material      string
	Thickness     float64
	Permittivity  *float64
	LossTangent   *float64
	IsKeepIsland  bool
}

// Fill is a FILL record: a copper pour or mechanical fill region whose
// geometry is described by Path, decoded later by package translate.
type Fill struct {
	ID         string
	GroupID    string
	Net        string
	LayerID    string
	Width      float64
	FillStyle  string
	Path       json.RawMessage
	Locked     bool
	Attributes []FootprintAttribute
}

// Poly is a POLY record: a non-filled outline, e.g. a keepout or board
// cutout, also path-described.
type Poly struct {
	ID         string
	GroupID    string
	Net        string
	LayerID    string
	Width      float64
	Path       json.RawMessage
	Locked     bool
	Attributes []FootprintAttribute
}

// Pad is a PAD record, the most heavily overloaded tag in the footprint
// format: pad_type distinguishes through-hole from SMD, and the hole/
// special_pad fields are present only for some pad_types.
type Pad struct {
	ID                   string
	GroupID              string
	Net                  string
	LayerID              string
	Num                  string
	CenterX, CenterY     float64
	Rotation             float64
	Hole                 json.RawMessage
	Path                 json.RawMessage
	SpecialPad           json.RawMessage
	HoleOffsetX          float64
	HoleOffsetY          float64
	HoleRotation         *float64
	IsPlated             bool
	PadType              string
	TopSolderExpansion   *float64
	BottomSolderExpansion *float64
	TopPasteExpansion    *float64
	BottomPasteExpansion *float64
	Locked               bool
	ConnectMode          *int
	SpokeSpace           *float64
	SpokeWidth           *float64
	SpokeAngle           *float64
	UnusedInnerLayers    json.RawMessage
	Attributes           []FootprintAttribute
}

// Via is a VIA record. No VIA tag appears in the original implementation
// this package is ported from; its layout here is inferred from the
// structural pattern shared by PAD/FILL/NET (id/group/net, geometry
// floats, trailing lock flag) rather than transcribed from a reference.
type Via struct {
	ID            string
	GroupID       string
	Net           string
	CenterX       float64
	CenterY       float64
	Diameter      float64
	DrillDiameter float64
	Locked        bool
}

// Net is a NET record naming one electrical net.
type Net struct {
	Name                 string
	NetType              string
	SpecialColor         string
	HideRatline          *bool
	DifferentialName     string
	EqualLengthGroupName json.RawMessage
	IsPositiveNet        *bool
}

// RuleTemplate is a RULE_TEMPLATE record.
type RuleTemplate struct {
	Name string
}

// Rule is a RULE record.
type Rule struct {
	RuleType  string
	Name      string
	IsDefault bool
	Context   json.RawMessage
}

// Primitive is a PRIMITIVE record.
type Primitive struct {
	Name    string
	Display bool
	Pick    bool
}

// FootprintString is a STRING record: silkscreen or fab-layer text.
type FootprintString struct {
	ID               string
	GroupID          string
	LayerID          string
	PosX, PosY       float64
	Text             string
	FontFamily       string
	FontSize         float64
	StrokeWidth      float64
	IsBold           bool
	IsItalic         bool
	Origin           int
	Angle            float64
	IsReverse        bool
	ReverseExpansion float64
	IsMirrored       bool
	Locked           bool
}

// FootprintAttribute is an ATTR record attached to a PAD/FILL/POLY by id,
// or left loose (e.g. the footprint's own Reference/Value properties)
// when ParentID is empty.
type FootprintAttribute struct {
	ID               string
	GroupID          string
	ParentID         string
	LayerID          string
	X, Y             *float64
	Key              string
	Value            string
	KeyVisible       bool
	ValueVisible     bool
	FontFamily       string
	FontSize         float64
	StrokeWidth      float64
	IsBold           bool
	IsItalic         bool
	Origin           int
	Angle            float64
	IsReverse        bool
	ReverseExpansion float64
	IsMirrored       bool
	Locked           bool
}

// Canvas is the CANVAS record carrying sheet/grid metadata; the
// translator does not read it.
type Canvas struct {
	OriginX       float64
	OriginY       float64
	Unit          string
	GridSizeX     float64
	GridSizeY     float64
	SnapSizeX     float64
	SnapSizeY     float64
	AltSnapSizeX  *float64
	AltSnapSizeY  *float64
	GridType      string
	MultiGridType string
	MultiGridRatio *float64
}

// FootprintDocument is every record decoded from one EasyEDA footprint
// payload, grounded on EasyEDAFootprint in footprint.rs.
type FootprintDocument struct {
	Doctype        Doctype
	Head           FootprintHead
	Canvas         Canvas
	Layers         map[string]*Layer
	PhysicalLayers map[string]*PhysicalLayer
	ActiveLayer    string
	Fills          map[string]*Fill
	Polys          map[string]*Poly
	Pads           map[string]*Pad
	Vias           map[string]*Via
	Nets           []Net
	RuleTemplates  []RuleTemplate
	Rules          []Rule
	Primitives     []Primitive
	Strings        []*FootprintString
	LooseAttrs     []FootprintAttribute
}

// ignoredFootprintTags are recognized but carry nothing package translate
// needs; they decode to a no-op instead of raising WrongTagError.
var ignoredFootprintTags = map[string]bool{
	"IMAGE":           true,
	"FONT":            true,
	"RULE_SELECTOR":   true,
	"PREFERENCE":      true,
	"PANELIZE":        true,
	"PANELIZE_STAMP":  true,
	"PANELIZE_SIDE":   true,
	"SILK_OPTS":       true,
	"CONNECT":         true,
}

// DecodeFootprint parses a full EasyEDA footprint payload line by line,
// per spec.md §4.5.
func DecodeFootprint(r io.Reader) (*FootprintDocument, error) {
	doc := &FootprintDocument{
		Layers:         map[string]*Layer{},
		PhysicalLayers: map[string]*PhysicalLayer{},
		Fills:          map[string]*Fill{},
		Polys:          map[string]*Poly{},
		Pads:           map[string]*Pad{},
		Vias:           map[string]*Via{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tag, cur, err := decodeLine(line)
		if err != nil {
			return nil, err
		}
		if tag == "" {
			continue
		}
		if ignoredFootprintTags[tag] {
			continue
		}

		switch tag {
		case "DOCTYPE":
			if cur.remaining() != 2 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 2}
			}
			kind, err := cur.requireString("kind")
			if err != nil {
				return nil, err
			}
			version, err := cur.requireString("version")
			if err != nil {
				return nil, err
			}
			doc.Doctype = Doctype{Kind: kind, Version: version}
		case "HEAD":
			if cur.remaining() != 1 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 1}
			}
			raw, err := cur.requireValue("parameters")
			if err != nil {
				return nil, err
			}
			h, err := parseFootprintHead(raw)
			if err != nil {
				return nil, err
			}
			doc.Head = h
		case "CANVAS":
			if cur.remaining() < 7 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 7}
			}
			c, err := parseCanvas(cur)
			if err != nil {
				return nil, err
			}
			doc.Canvas = c
		case "LAYER":
			if cur.remaining() != 8 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 8}
			}
			l, err := parseLayer(cur)
			if err != nil {
				return nil, err
			}
			doc.Layers[l.ID] = l
		case "LAYER_PHYS":
			if cur.remaining() != 6 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 6}
			}
			pl, err := parsePhysicalLayer(cur)
			if err != nil {
				return nil, err
			}
			doc.PhysicalLayers[pl.ID] = pl
		case "ACTIVE_LAYER":
			if cur.remaining() != 1 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 1}
			}
			id, err := cur.requireString("id")
			if err != nil {
				return nil, err
			}
			doc.ActiveLayer = id
		case "FILL":
			if cur.remaining() != 8 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 8}
			}
			f, err := parseFill(cur)
			if err != nil {
				return nil, err
			}
			doc.Fills[f.ID] = f
		case "POLY":
			if cur.remaining() != 7 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 7}
			}
			p, err := parsePoly(cur)
			if err != nil {
				return nil, err
			}
			doc.Polys[p.ID] = p
		case "PAD":
			if cur.remaining() < 21 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 21}
			}
			p, err := parsePad(cur)
			if err != nil {
				return nil, err
			}
			doc.Pads[p.ID] = p
		case "VIA":
			if cur.remaining() != 8 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 8}
			}
			v, err := parseVia(cur)
			if err != nil {
				return nil, err
			}
			doc.Vias[v.ID] = v
		case "NET":
			if cur.remaining() != 7 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 7}
			}
			n, err := parseNet(cur)
			if err != nil {
				return nil, err
			}
			doc.Nets = append(doc.Nets, n)
		case "RULE_TEMPLATE":
			if cur.remaining() != 1 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 1}
			}
			name, err := cur.requireString("name")
			if err != nil {
				return nil, err
			}
			doc.RuleTemplates = append(doc.RuleTemplates, RuleTemplate{Name: name})
		case "RULE":
			if cur.remaining() != 4 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 4}
			}
			rule, err := parseRule(cur)
			if err != nil {
				return nil, err
			}
			doc.Rules = append(doc.Rules, rule)
		case "PRIMITIVE":
			if cur.remaining() != 3 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 3}
			}
			prim, err := parsePrimitive(cur)
			if err != nil {
				return nil, err
			}
			doc.Primitives = append(doc.Primitives, prim)
		case "STRING":
			if cur.remaining() != 17 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 17}
			}
			s, err := parseFootprintString(cur)
			if err != nil {
				return nil, err
			}
			doc.Strings = append(doc.Strings, s)
		case "ATTR":
			if cur.remaining() != 21 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 21}
			}
			a, err := parseFootprintAttribute(cur)
			if err != nil {
				return nil, err
			}
			if err := attachFootprintAttribute(doc, a); err != nil {
				return nil, err
			}
		default:
			return nil, &WrongTagError{Tag: tag}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// attachFootprintAttribute attaches an ATTR record to the PAD/FILL/POLY
// it names, or records it as a loose document attribute (e.g. the
// footprint's own Reference/Value) when it has no parent.
func attachFootprintAttribute(doc *FootprintDocument, a FootprintAttribute) error {
	if a.ParentID == "" {
		doc.LooseAttrs = append(doc.LooseAttrs, a)
		return nil
	}
	if p, ok := doc.Pads[a.ParentID]; ok {
		p.Attributes = append(p.Attributes, a)
		return nil
	}
	if f, ok := doc.Fills[a.ParentID]; ok {
		f.Attributes = append(f.Attributes, a)
		return nil
	}
	if p, ok := doc.Polys[a.ParentID]; ok {
		p.Attributes = append(p.Attributes, a)
		return nil
	}
	return &UnresolvedAttributeError{ParentID: a.ParentID}
}
