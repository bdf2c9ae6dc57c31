package easyeda

import "bufio"
import "io"
import "strings"

// Point2D is a bare coordinate pair, used by PolyLine's flat point list.
type Point2D struct {
	X, Y float64
}

// LineStyle is an EasyEDA LINESTYLE record, keyed by its index name and
// referenced from stroke-bearing shapes via StyleID, per symbol.rs's
// LineStyle.
type LineStyle struct {
	IndexName   string
	StrokeColor string
	StrokeStyle int
	FillColor   string
	StrokeWidth *float64
	FillStyle   string
}

// FontStyle is an EasyEDA FONTSTYLE record, keyed by its index name.
type FontStyle struct {
	IndexName     string
	FillColor     string
	Color         string
	FontFamily    string
	FontSize      *float64
	Italic        bool
	Bold          bool
	Underline     bool
	Strikethrough bool
	VAlign        int
	HAlign        int
}

// SymbolAttribute is an ATTR line attached either to the current PART
// (empty parent_id) or to the rectangle, circle, ellipse or pin whose id
// it names.
type SymbolAttribute struct {
	ID           string
	ParentID     string
	Key          string
	Value        string
	KeyVisible   bool
	ValueVisible bool
	X, Y         *float64
	Rotation     *float64
	StyleID      string
	Locked       bool
}

// Part is one PART section: a bounding box plus the ATTRs (NAME, VALUE,
// ...) attached directly to it.
type Part struct {
	ID                               string
	BBoxX, BBoxY, BBoxEndX, BBoxEndY float64
	Attributes                       []SymbolAttribute
}

type Rectangle struct {
	ID                       string
	X, Y, EndX, EndY, RX, RY float64
	Rotation                 float64
	StyleID                  string
	Locked                   bool
	Attributes               []SymbolAttribute
}

type Circle struct {
	ID         string
	CX, CY, R  float64
	StyleID    string
	Locked     bool
	Attributes []SymbolAttribute
}

// Ellipse is an EasyEDA ELLIPSE shape. spec.md §4.6 treats equal-radii
// ellipses as circles and rejects unequal ones; the translator, not this
// decoder, makes that call.
type Ellipse struct {
	ID         string
	CX, CY     float64
	RX, RY     float64
	StyleID    string
	Locked     bool
	Attributes []SymbolAttribute
}

type PolyLine struct {
	ID       string
	Points   []Point2D
	Closed   bool
	StyleID  string
	Locked   bool
}

type Arc struct {
	ID                     string
	X1, Y1, X2, Y2, X3, Y3 float64
	StyleID                string
	Locked                 bool
}

// Bezier is decoded but never translated: spec.md §4.6 rejects it with
// UnsupportedElement("Bezier") at the translate stage.
type Bezier struct {
	ID       string
	Points   []Point2D
	Closed   bool
	StyleID  string
	Locked   bool
}

// Text is an EasyEDA TEXT element inside a symbol, laid out after STRING
// (footprint.go) since no original-source reference covers a symbol TEXT
// tag: id, position, rotation, content, then the same font/style fields
// STRING carries.
type Text struct {
	ID         string
	X, Y       float64
	Rotation   float64
	Value      string
	FontFamily string
	FontSize   float64
	Bold       bool
	Italic     bool
	StyleID    string
	Locked     bool
}

// Pin is an EasyEDA PIN element; its NAME/NUMBER come from the two ATTR
// children attached to it by id, not from this struct directly.
type Pin struct {
	ID         string
	Display    bool
	Electric   *bool
	X, Y       float64
	Length     float64
	Rotation   float64
	PinColor   string
	PinShape   int
	Locked     bool
	Attributes []SymbolAttribute
}

// SymbolDocument is every record decoded from one EasyEDA symbol payload,
// grounded on EasyEDASymbol in symbol.rs.
type SymbolDocument struct {
	Doctype    Doctype
	Head       SymbolHead
	LineStyles map[string]LineStyle
	FontStyles map[string]FontStyle
	Parts      []*Part
	Rectangles map[string]*Rectangle
	Circles    map[string]*Circle
	Ellipses   map[string]*Ellipse
	Lines      map[string]*PolyLine
	Arcs       map[string]*Arc
	Beziers    map[string]*Bezier
	Texts      map[string]*Text
	Pins       map[string]*Pin
}

// Doctype is the DOCTYPE line shared by both symbol and footprint payloads.
type Doctype struct {
	Kind    string
	Version string
}

// SymbolHead is the symbol HEAD record's inline JSON object.
type SymbolHead struct {
	SymbolType int
	OriginX    float64
	OriginY    float64
	Version    string
}

// DecodeSymbol parses a full EasyEDA symbol payload line by line, per
// spec.md §4.5.
func DecodeSymbol(r io.Reader) (*SymbolDocument, error) {
	doc := &SymbolDocument{
		LineStyles: map[string]LineStyle{},
		FontStyles: map[string]FontStyle{},
		Rectangles: map[string]*Rectangle{},
		Circles:    map[string]*Circle{},
		Ellipses:   map[string]*Ellipse{},
		Lines:      map[string]*PolyLine{},
		Arcs:       map[string]*Arc{},
		Beziers:    map[string]*Bezier{},
		Texts:      map[string]*Text{},
		Pins:       map[string]*Pin{},
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
			h, err := parseSymbolHead(raw)
			if err != nil {
				return nil, err
			}
			doc.Head = h
		case "LINESTYLE":
			if cur.remaining() != 5 && cur.remaining() != 6 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 6}
			}
			ls := LineStyle{}
			ls.IndexName, err = cur.requireString("index_name")
			if err != nil {
				return nil, err
			}
			ls.StrokeColor = cur.optionalString()
			if n, ok := cur.readInt(); ok {
				ls.StrokeStyle = n
			}
			ls.FillColor = cur.optionalString()
			ls.StrokeWidth = cur.optionalFloat()
			if cur.canRead() {
				ls.FillStyle = cur.optionalString()
			}
			doc.LineStyles[ls.IndexName] = ls
		case "FONTSTYLE":
			if cur.remaining() != 11 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 11}
			}
			fs := FontStyle{}
			fs.IndexName, err = cur.requireString("index_name")
			if err != nil {
				return nil, err
			}
			fs.FillColor = cur.optionalString()
			fs.Color = cur.optionalString()
			fs.FontFamily = cur.optionalString()
			fs.FontSize = cur.optionalFloat()
			if b := cur.optionalBool(); b != nil {
				fs.Italic = *b
			}
			if b := cur.optionalBool(); b != nil {
				fs.Bold = *b
			}
			if b := cur.optionalBool(); b != nil {
				fs.Underline = *b
			}
			if b := cur.optionalBool(); b != nil {
				fs.Strikethrough = *b
			}
			if n, ok := cur.readInt(); ok {
				fs.VAlign = n
			}
			if n, ok := cur.readInt(); ok {
				fs.HAlign = n
			}
			doc.FontStyles[fs.IndexName] = fs
		case "PART":
			if cur.remaining() != 2 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 2}
			}
			id, err := cur.requireString("id")
			if err != nil {
				return nil, err
			}
			raw, err := cur.requireValue("bbox")
			if err != nil {
				return nil, err
			}
			p, err := parsePart(id, raw)
			if err != nil {
				return nil, err
			}
			doc.Parts = append(doc.Parts, p)
		case "ATTR":
			if cur.remaining() != 11 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 11}
			}
			a, err := parseSymbolAttr(cur)
			if err != nil {
				return nil, err
			}
			if err := attachSymbolAttribute(doc, a); err != nil {
				return nil, err
			}
		case "RECT":
			if cur.remaining() != 10 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 10}
			}
			rect, err := parseRectangle(cur)
			if err != nil {
				return nil, err
			}
			doc.Rectangles[rect.ID] = rect
		case "CIRCLE":
			if cur.remaining() != 6 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 6}
			}
			c, err := parseCircle(cur)
			if err != nil {
				return nil, err
			}
			doc.Circles[c.ID] = c
		case "ELLIPSE":
			if cur.remaining() != 7 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 7}
			}
			e, err := parseEllipse(cur)
			if err != nil {
				return nil, err
			}
			doc.Ellipses[e.ID] = e
		case "POLY":
			if cur.remaining() != 5 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 5}
			}
			pl, err := parsePolyLine(tag, cur)
			if err != nil {
				return nil, err
			}
			doc.Lines[pl.ID] = pl
		case "ARC":
			if cur.remaining() != 9 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 9}
			}
			a, err := parseArc(cur)
			if err != nil {
				return nil, err
			}
			doc.Arcs[a.ID] = a
		case "BEZIER":
			if cur.remaining() != 5 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 5}
			}
			bz, err := parseBezier(tag, cur)
			if err != nil {
				return nil, err
			}
			doc.Beziers[bz.ID] = bz
		case "TEXT":
			if cur.remaining() != 9 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 9}
			}
			t, err := parseSymbolText(cur)
			if err != nil {
				return nil, err
			}
			doc.Texts[t.ID] = t
		case "PIN":
			if cur.remaining() != 10 {
				return nil, &ArgumentCountError{Tag: tag, Got: cur.remaining(), Want: 10}
			}
			p, err := parsePin(cur)
			if err != nil {
				return nil, err
			}
			doc.Pins[p.ID] = p
		case "OBJ":
			// embedded raster/vector reference; no KiCad equivalent, decoded
			// and dropped rather than erroring (spec.md §4.5).
		default:
			return nil, &WrongTagError{Tag: tag}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func attachSymbolAttribute(doc *SymbolDocument, a SymbolAttribute) error {
	if a.ParentID == "" {
		if len(doc.Parts) == 0 {
			return &UnresolvedAttributeError{ParentID: "<no current part>"}
		}
		cur := doc.Parts[len(doc.Parts)-1]
		cur.Attributes = append(cur.Attributes, a)
		return nil
	}
	if rect, ok := doc.Rectangles[a.ParentID]; ok {
		rect.Attributes = append(rect.Attributes, a)
		return nil
	}
	if c, ok := doc.Circles[a.ParentID]; ok {
		c.Attributes = append(c.Attributes, a)
		return nil
	}
	if e, ok := doc.Ellipses[a.ParentID]; ok {
		e.Attributes = append(e.Attributes, a)
		return nil
	}
	if p, ok := doc.Pins[a.ParentID]; ok {
		p.Attributes = append(p.Attributes, a)
		return nil
	}
	return &UnresolvedAttributeError{ParentID: a.ParentID}
}
