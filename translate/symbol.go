package translate

import (
	"strconv"
	"strings"

	"github.com/SparkyTD/jlcrs/easyeda"
	"github.com/SparkyTD/jlcrs/kicad"
)

// symbolScaleFactor converts EasyEDA symbol coordinates (10 mil) to
// millimeters, per symbol.rs's `scale_factor = 0.254`. This differs from
// the footprint side's 0.0254 because symbol and footprint payloads use
// different internal units.
const symbolScaleFactor = 0.254

func lineStyleFor(doc *easyeda.SymbolDocument, styleID string) kicad.StrokeDefinition {
	stroke := kicad.StrokeDefinition{Width: symbolScaleFactor, Dash: kicad.DashSolid}
	ls, ok := doc.LineStyles[styleID]
	if !ok {
		return stroke
	}
	if ls.StrokeWidth != nil {
		stroke.Width = *ls.StrokeWidth
	}
	if ls.StrokeColor != "" {
		if c, err := kicad.ParseColorHex(ls.StrokeColor); err == nil {
			stroke.Color = &c
		}
	}
	return stroke
}

func attrValue(attrs []easyeda.SymbolAttribute, key string) (string, bool) {
	var value string
	var found bool
	for _, a := range attrs {
		if a.Key == key {
			value = a.Value
			found = true
		}
	}
	return value, found
}

func graphicStyleFor(shape int) kicad.GraphicStyle {
	switch shape {
	case 1:
		return kicad.PinClock
	case 2:
		return kicad.PinInverted
	case 3:
		return kicad.PinInvertedClock
	default:
		return kicad.PinLine
	}
}

// splitUnitID splits a part id of the form "BASE.N" into its base name and
// unit number, per spec.md §4.6 item 4's multi-unit contract.
func splitUnitID(id string) (base string, unit int, err error) {
	idx := strings.LastIndex(id, ".")
	if idx < 0 || idx == len(id)-1 {
		return "", 0, newUnitLayout(id, IncorrectUnitFormat)
	}
	base = id[:idx]
	n, convErr := strconv.Atoi(id[idx+1:])
	if convErr != nil || n <= 0 {
		return "", 0, newUnitLayout(id, IncorrectUnitNumIdentifier)
	}
	return base, n, nil
}

// unitNumsConsecutive reports whether nums, in any order, is exactly the
// set {1, ..., k} with k = len(nums). Per spec.md §4.6 item 4, a symbol
// supplying e.g. units 1 and 3 but no unit 2 is malformed even though each
// individual id parses fine.
func unitNumsConsecutive(nums []int) bool {
	seen := make(map[int]bool, len(nums))
	for _, n := range nums {
		seen[n] = true
	}
	for i := 1; i <= len(nums); i++ {
		if !seen[i] {
			return false
		}
	}
	return true
}

// TranslateSymbol converts a decoded EasyEDA symbol document into a Kicad
// symbol, grounded on symbol.rs's `impl Into<Symbol>`. When doc.Parts holds
// more than one part, each becomes a numbered unit under a shared base
// symbol id, per spec.md §4.6 item 4.
func TranslateSymbol(doc *easyeda.SymbolDocument) (kicad.Symbol, error) {
	if len(doc.Parts) == 0 {
		return kicad.Symbol{}, newUnitLayout("", IncorrectUnitFormat)
	}

	if len(doc.Parts) == 1 {
		sym, err := translateUnitBody(doc)
		if err != nil {
			return kicad.Symbol{}, err
		}
		sym.ID = doc.Parts[0].ID
		sym.InBOM = true
		sym.OnBoard = true
		return sym, nil
	}

	var base string
	unitNums := make([]int, len(doc.Parts))
	units := make([]kicad.Symbol, 0, len(doc.Parts))
	for i, part := range doc.Parts {
		partBase, unitNum, err := splitUnitID(part.ID)
		if err != nil {
			return kicad.Symbol{}, err
		}
		if i == 0 {
			base = partBase
		} else if partBase != base {
			return kicad.Symbol{}, newUnitLayout(part.ID, IncorrectUnitName)
		}
		unitNums[i] = unitNum
		unit, err := translateUnitBody(doc)
		if err != nil {
			return kicad.Symbol{}, err
		}
		unit.ID = base + "_" + strconv.Itoa(unitNum) + "_1"
		units = append(units, unit)
	}
	if !unitNumsConsecutive(unitNums) {
		return kicad.Symbol{}, newUnitLayout(doc.Parts[0].ID, IncorrectUnitNumIdentifier)
	}

	return kicad.Symbol{
		ID:      base,
		InBOM:   true,
		OnBoard: true,
		Units:   units,
	}, nil
}

// translateUnitBody builds the graphical body shared by every unit of a
// symbol: rectangles, circles, arcs, lines and pins. It does not assign ID
// or the top-level In BOM/OnBoard flags; the caller does.
func translateUnitBody(doc *easyeda.SymbolDocument) (kicad.Symbol, error) {
	var sym kicad.Symbol

	for _, rect := range doc.Rectangles {
		sym.Rectangles = append(sym.Rectangles, kicad.SymbolRectangle{
			Start:  kicad.Position{X: rect.X * symbolScaleFactor, Y: rect.Y * symbolScaleFactor},
			End:    kicad.Position{X: rect.EndX * symbolScaleFactor, Y: rect.EndY * symbolScaleFactor},
			Stroke: lineStyleFor(doc, rect.StyleID),
			Fill:   kicad.FillBackground,
		})
	}

	for _, circle := range doc.Circles {
		sym.Circles = append(sym.Circles, kicad.SymbolCircle{
			Center: kicad.Position{X: circle.CX * symbolScaleFactor, Y: circle.CY * symbolScaleFactor},
			Radius: circle.R * symbolScaleFactor,
			Stroke: lineStyleFor(doc, circle.StyleID),
			Fill:   kicad.FillNone,
		})
	}

	for _, ell := range doc.Ellipses {
		if ell.RX != ell.RY {
			return sym, &UnsupportedElement{Kind: "unequal-radius ellipse"}
		}
		sym.Circles = append(sym.Circles, kicad.SymbolCircle{
			Center: kicad.Position{X: ell.CX * symbolScaleFactor, Y: ell.CY * symbolScaleFactor},
			Radius: ell.RX * symbolScaleFactor,
			Stroke: lineStyleFor(doc, ell.StyleID),
			Fill:   kicad.FillNone,
		})
	}

	for _, line := range doc.Lines {
		var pts []kicad.Position
		for _, p := range line.Points {
			pts = append(pts, kicad.Position{X: p.X * symbolScaleFactor, Y: p.Y * symbolScaleFactor})
		}
		sym.Lines = append(sym.Lines, kicad.SymbolPolyline{
			Points: pts,
			Stroke: lineStyleFor(doc, line.StyleID),
			Fill:   kicad.FillNone,
		})
	}

	for range doc.Beziers {
		return sym, &UnsupportedElement{Kind: "Bezier"}
	}

	for _, arc := range doc.Arcs {
		sym.Arcs = append(sym.Arcs, kicad.SymbolArc{
			Start:  kicad.Position{X: arc.X1 * symbolScaleFactor, Y: arc.Y1 * symbolScaleFactor},
			Mid:    kicad.Position{X: arc.X2 * symbolScaleFactor, Y: arc.Y2 * symbolScaleFactor},
			End:    kicad.Position{X: arc.X3 * symbolScaleFactor, Y: arc.Y3 * symbolScaleFactor},
			Stroke: lineStyleFor(doc, arc.StyleID),
			Fill:   kicad.FillNone,
		})
	}

	for _, pin := range doc.Pins {
		name, _ := attrValue(pin.Attributes, "NAME")
		number, _ := attrValue(pin.Attributes, "NUMBER")
		if name == "" {
			name = "~"
		}
		rotation := pin.Rotation
		sym.Pins = append(sym.Pins, kicad.SymbolPin{
			ElectricalType: kicad.PinUnspecified,
			GraphicStyle:   graphicStyleFor(pin.PinShape),
			Position:       kicad.Position{X: pin.X * symbolScaleFactor, Y: pin.Y * symbolScaleFactor, Angle: &rotation},
			Length:         pin.Length * symbolScaleFactor,
			Name:           &name,
			NameEffects:    kicad.DefaultTextEffect,
			Number:         &number,
			NumberEffects:  kicad.DefaultTextEffect,
		})
	}

	for _, text := range doc.Texts {
		sym.Texts = append(sym.Texts, kicad.SymbolText{
			Text:     text.Value,
			Position: kicad.Position{X: text.X * symbolScaleFactor, Y: text.Y * symbolScaleFactor},
			Effects:  kicad.DefaultTextEffect,
		})
	}

	return sym, nil
}
