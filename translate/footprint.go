package translate

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/SparkyTD/jlcrs/easyeda"
	"github.com/SparkyTD/jlcrs/kicad"
)

// kicadLayerForType maps an EasyEDA layer_type/id pair onto a single
// Kicad layer, per spec.md §4.7's layer table. It returns ok=false (with
// a nil error) for "MULTI", which has no single-layer target and is
// instead handled per-caller (mechanical fills, through-hole pads).
func kicadLayerForType(layerType string, layerID string) (layer kicad.PcbLayer, ok bool, err error) {
	switch layerType {
	case "TOP_SILK":
		return kicad.LayerFSilkS, true, nil
	case "BOT_SILK":
		return kicad.LayerBSilkS, true, nil
	case "COMPONENT_SHAPE", "DOCUMENT":
		return kicad.LayerFFab, true, nil
	case "COMPONENT_MARKING":
		return kicad.LayerFSilkS, true, nil
	case "TOP_ASSEMBLY":
		return kicad.LayerFFab, true, nil
	case "BOT_ASSEMBLY":
		return kicad.LayerBFab, true, nil
	case "TOP_PASTE_MASK":
		return kicad.LayerFPaste, true, nil
	case "BOT_PASTE_MASK":
		return kicad.LayerBPaste, true, nil
	case "TOP_SOLDER_MASK":
		return kicad.LayerFMask, true, nil
	case "BOT_SOLDER_MASK":
		return kicad.LayerBMask, true, nil
	case "PIN_SOLDERING", "PIN_FLOATING":
		return kicad.LayerFFab, true, nil
	case "TOP":
		return kicad.LayerFCu, true, nil
	case "BOTTOM":
		return kicad.LayerBCu, true, nil
	case "SIGNAL":
		n, convErr := strconv.Atoi(layerID)
		if convErr != nil {
			return "", false, &UnsupportedLayer{LayerID: layerID}
		}
		inner := n - 2
		if inner < 1 || inner > 30 {
			return "", false, &UnsupportedInnerLayer{Index: inner}
		}
		l, _ := kicad.InnerLayer(inner)
		return l, true, nil
	case "MULTI":
		return "", false, nil
	default:
		return "", false, &UnsupportedLayer{LayerID: layerType}
	}
}

func mechanicalFillLayers() []kicad.PcbLayer {
	layers := []kicad.PcbLayer{kicad.LayerFMask, kicad.LayerBMask}
	layers = append(layers, kicad.AllCopperLayers()...)
	return layers
}

// originToJustify maps a STRING/ATTR origin code onto a Kicad text
// justification, per footprint.rs's `string.origin as u32` match.
func originToJustify(origin int) kicad.TextJustify {
	switch origin {
	case 1:
		return kicad.TextJustify{H: kicad.HAlignLeft, V: kicad.VAlignBottom}
	case 2, 3:
		return kicad.TextJustify{H: kicad.HAlignLeft, V: kicad.VAlignTop}
	case 4:
		return kicad.TextJustify{H: kicad.HAlignRight, V: kicad.VAlignBottom}
	case 5, 6:
		return kicad.TextJustify{H: kicad.HAlignRight, V: kicad.VAlignTop}
	case 7:
		return kicad.TextJustify{H: kicad.HAlignRight, V: kicad.VAlignBottom}
	default:
		return kicad.TextJustify{H: kicad.HAlignRight, V: kicad.VAlignTop}
	}
}

// footprintBuilder accumulates translated geometry and tracks the y-extent
// used to place the Reference/Value properties, per footprint.rs's
// max_y/min_y bookkeeping.
type footprintBuilder struct {
	fp         kicad.Footprint
	maxY, minY float64
	throughHole bool
}

func newFootprintBuilder(name string) *footprintBuilder {
	return &footprintBuilder{
		fp:   kicad.Footprint{Name: name, Layer: kicad.LayerFCu},
		maxY: -math.MaxFloat64,
		minY: math.MaxFloat64,
	}
}

func (b *footprintBuilder) trackY(y float64) {
	if y > b.maxY {
		b.maxY = y
	}
	if y < b.minY {
		b.minY = y
	}
}

// TranslateFootprint converts a decoded EasyEDA footprint document into a
// Kicad footprint, grounded on footprint.rs's `impl Into<FootprintLibrary>`.
func TranslateFootprint(doc *easyeda.FootprintDocument, name string) (kicad.Footprint, error) {
	b := newFootprintBuilder(name)

	layerByID := func(id string) (*easyeda.Layer, error) {
		l, ok := doc.Layers[id]
		if !ok {
			return nil, &UnsupportedLayer{LayerID: id}
		}
		return l, nil
	}

	// Polygons (POLY records): outline-only geometry, never mechanical.
	for _, poly := range doc.Polys {
		l, err := layerByID(poly.LayerID)
		if err != nil {
			return b.fp, err
		}
		layer, ok, err := kicadLayerForType(l.LayerType, l.ID)
		if err != nil {
			return b.fp, err
		}
		if !ok {
			continue
		}
		geom, err := DecodePolygonPath(poly.Path)
		if err != nil {
			return b.fp, err
		}
		width := poly.Width * scaleFactor
		if err := b.addOutlineGeometry(geom, layer, width, false); err != nil {
			return b.fp, err
		}
	}

	// Fills (FILL records): non-mechanical copper/silk fills on a single
	// named layer, and mechanical NPTH exclusion fills on MULTI.
	for _, fill := range doc.Fills {
		l, err := layerByID(fill.LayerID)
		if err != nil {
			return b.fp, err
		}
		subPaths, err := decodeFillSubPaths(fill.Path)
		if err != nil {
			return b.fp, err
		}

		if l.LayerType == "MULTI" {
			for _, sp := range subPaths {
				if err := b.addMechanicalFill(sp); err != nil {
					return b.fp, err
				}
			}
			continue
		}

		layer, ok, err := kicadLayerForType(l.LayerType, l.ID)
		if err != nil {
			return b.fp, err
		}
		if !ok {
			continue
		}
		width := fill.Width * scaleFactor
		for _, sp := range subPaths {
			geom, err := DecodePolygonPath(sp)
			if err != nil {
				return b.fp, err
			}
			if err := b.addOutlineGeometry(geom, layer, width, true); err != nil {
				return b.fp, err
			}
		}
	}

	// Pads (through-hole and SMD).
	for _, pad := range doc.Pads {
		l, err := layerByID(pad.LayerID)
		if err != nil {
			return b.fp, err
		}
		kp, err := b.translatePad(pad, l)
		if err != nil {
			return b.fp, err
		}
		b.fp.Pads = append(b.fp.Pads, kp)
	}

	// Vias: no VIA tag exists in the reference this package learned from;
	// translated by analogy to the MULTI-layer pad pattern above (round
	// through-hole pad on every copper layer plus both mask layers).
	for _, via := range doc.Vias {
		b.trackY(-via.CenterY * scaleFactor)
		diameter := via.Diameter * scaleFactor
		drill := via.DrillDiameter * scaleFactor
		b.fp.Pads = append(b.fp.Pads, kicad.FootprintPad{
			Name: "",
			Kind: kicad.PadThruHole,
			Shape: kicad.PadCircle,
			Position: kicad.Position{X: via.CenterX * scaleFactor, Y: -via.CenterY * scaleFactor},
			SizeW: diameter,
			SizeH: diameter,
			Drill: &kicad.DrillDefinition{Shape: kicad.DrillRound, Width: drill},
			Layers: mechanicalFillLayers(),
		})
		b.throughHole = true
	}

	// Strings: silkscreen/fab text.
	for _, s := range doc.Strings {
		l, err := layerByID(s.LayerID)
		if err != nil {
			return b.fp, err
		}
		layer, ok, err := kicadLayerForType(l.LayerType, l.ID)
		if err != nil {
			return b.fp, err
		}
		if !ok {
			continue
		}
		effects := kicad.DefaultTextEffect
		effects.Font.Bold = s.IsBold
		effects.Font.Italic = s.IsItalic
		size := s.FontSize * scaleFactor
		effects.Font.Size = kicad.FontSize{W: size, H: size}
		effects.Justify = originToJustify(s.Origin)
		angle := s.Angle
		b.fp.Texts = append(b.fp.Texts, kicad.FootprintText{
			Kind:     kicad.TextUser,
			Text:     s.Text,
			Position: kicad.Position{X: s.PosX * scaleFactor, Y: -s.PosY * scaleFactor, Angle: &angle},
			Layer:    layer,
			Effects:  effects,
		})
	}

	if b.throughHole {
		b.fp.Attribute = "through_hole"
	} else {
		b.fp.Attribute = "smd"
	}

	defaultHeight := kicad.DefaultTextEffect.Font.Size.H
	b.maxY += defaultHeight
	b.minY -= defaultHeight

	b.fp.Properties = append(b.fp.Properties,
		kicad.FootprintProperty{
			Key:      "Reference",
			Value:    "Ref**",
			Position: kicad.Position{X: 0, Y: -b.maxY},
			Layer:    kicad.LayerFSilkS,
			Effects:  kicad.DefaultTextEffect,
		},
		kicad.FootprintProperty{
			Key:      "Value",
			Value:    "Val**",
			Position: kicad.Position{X: 0, Y: -b.minY},
			Layer:    kicad.LayerFFab,
			Effects:  kicad.DefaultTextEffect,
		},
	)

	return b.fp, nil
}

// decodeFillSubPaths returns a FILL record's path as a list of sub-paths:
// the raw value itself when it is a single path array, or each element
// when it is an array of path arrays (footprint.rs's `path_list`).
func decodeFillSubPaths(raw json.RawMessage) ([]json.RawMessage, error) {
	var nested []json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil || len(nested) == 0 {
		return []json.RawMessage{raw}, nil
	}
	var firstIsArray bool
	if err := json.Unmarshal(nested[0], new([]json.RawMessage)); err == nil {
		firstIsArray = true
	}
	if firstIsArray {
		return nested, nil
	}
	return []json.RawMessage{raw}, nil
}

// addOutlineGeometry appends DecodePolygonPath's result to the footprint
// as the appropriate primitive, tracking the running y-extent.
func (b *footprintBuilder) addOutlineGeometry(geom interface{}, layer kicad.PcbLayer, width float64, filled bool) error {
	stroke := kicad.StrokeDefinition{Width: width}
	switch g := geom.(type) {
	case PathLine:
		b.trackY(g.Start.Y)
		b.trackY(g.End.Y)
		b.fp.Lines = append(b.fp.Lines, kicad.FootprintLine{Start: g.Start, End: g.End, Stroke: stroke, Layer: layer})
	case PathPolygon:
		for _, p := range g.Points {
			b.trackY(p.Y)
		}
		b.fp.Polygons = append(b.fp.Polygons, kicad.FootprintPolygon{Points: g.Points, Stroke: stroke, Fill: filled, Layer: layer})
	case PathCircle:
		b.trackY(g.Center.Y + g.Radius)
		b.trackY(g.Center.Y - g.Radius)
		b.fp.Circles = append(b.fp.Circles, kicad.FootprintCircle{
			Center: g.Center,
			End:    kicad.Position{X: g.Center.X + g.Radius, Y: g.Center.Y},
			Stroke: stroke,
			Fill:   fillTypeFor(filled),
			Layer:  layer,
		})
	case PathArc:
		b.trackY(g.Start.Y)
		b.trackY(g.End.Y)
		b.fp.Arcs = append(b.fp.Arcs, kicad.FootprintArc{Start: g.Start, Mid: g.Mid, End: g.End, Stroke: stroke, Layer: layer})
	default:
		return &UnsupportedElement{Kind: "polygon geometry"}
	}
	return nil
}

func fillTypeFor(filled bool) kicad.FillType {
	if filled {
		return kicad.FillBackground
	}
	return kicad.FillNone
}

// addMechanicalFill handles a MULTI-layer fill sub-path: a circle becomes
// an NPTH round pad (a drilled hole with no copper connection), any other
// shape becomes an Edge.Cuts exclusion polygon rather than the reference
// implementation's unconditional panic.
func (b *footprintBuilder) addMechanicalFill(raw json.RawMessage) error {
	geom, err := DecodePolygonPath(raw)
	if err != nil {
		if circle, ok := tryDecodeCircle(raw); ok {
			geom = circle
		} else {
			return b.addEdgeCutsExclusion(raw)
		}
	}
	circle, ok := geom.(PathCircle)
	if !ok {
		return b.addEdgeCutsExclusion(raw)
	}
	b.trackY(circle.Center.Y + circle.Radius)
	b.trackY(circle.Center.Y - circle.Radius)
	diameter := circle.Radius * 2
	b.fp.Pads = append(b.fp.Pads, kicad.FootprintPad{
		Name:   "",
		Kind:   kicad.PadNPThruHole,
		Shape:  kicad.PadCircle,
		Position: circle.Center,
		SizeW:  diameter,
		SizeH:  diameter,
		Drill:  &kicad.DrillDefinition{Shape: kicad.DrillRound, Width: diameter},
		Layers: mechanicalFillLayers(),
	})
	b.throughHole = true
	return nil
}

func tryDecodeCircle(raw json.RawMessage) (PathCircle, bool) {
	toks, err := decodePathElements(raw)
	if err != nil || len(toks) != 4 || !toks[0].isString || toks[0].str != "CIRCLE" {
		return PathCircle{}, false
	}
	return PathCircle{
		Center: kicad.Position{X: toks[1].num * scaleFactor, Y: -toks[2].num * scaleFactor},
		Radius: toks[3].num * scaleFactor,
	}, true
}

// addEdgeCutsExclusion builds a board-cutout exclusion polygon for a
// mechanical fill shape that is not a circle, per spec.md §4.7's
// redesigned behavior for this case.
func (b *footprintBuilder) addEdgeCutsExclusion(raw json.RawMessage) error {
	geom, err := DecodePolygonPath(raw)
	if err != nil {
		return err
	}
	const edgeCutsStrokeWidth = 0.05
	stroke := kicad.StrokeDefinition{Width: edgeCutsStrokeWidth}
	switch g := geom.(type) {
	case PathPolygon:
		for _, p := range g.Points {
			b.trackY(p.Y)
		}
		b.fp.Polygons = append(b.fp.Polygons, kicad.FootprintPolygon{Points: g.Points, Stroke: stroke, Fill: false, Layer: kicad.LayerEdgeCuts})
	case PathLine:
		b.trackY(g.Start.Y)
		b.trackY(g.End.Y)
		b.fp.Polygons = append(b.fp.Polygons, kicad.FootprintPolygon{Points: []kicad.Position{g.Start, g.End}, Stroke: stroke, Fill: false, Layer: kicad.LayerEdgeCuts})
	default:
		return &UnsupportedElement{Kind: "mechanical fill shape"}
	}
	return nil
}

// translatePad builds a single pad, per footprint.rs's "Pads [THT + SMD]"
// section.
func (b *footprintBuilder) translatePad(pad *easyeda.Pad, layer *easyeda.Layer) (kicad.FootprintPad, error) {
	b.trackY(-pad.CenterY * scaleFactor)

	angle := pad.Rotation
	kp := kicad.FootprintPad{
		Name:     pad.Num,
		Kind:     kicad.PadSMD,
		Shape:    kicad.PadCustom,
		Position: kicad.Position{X: pad.CenterX * scaleFactor, Y: -pad.CenterY * scaleFactor, Angle: &angle},
	}

	if layer.LayerType == "MULTI" {
		kp.Layers = mechanicalFillLayers()
	} else {
		single, ok, err := kicadLayerForType(layer.LayerType, layer.ID)
		if err != nil {
			return kp, err
		}
		if !ok {
			return kp, &UnsupportedLayer{LayerID: layer.ID}
		}
		kp.Layers = []kicad.PcbLayer{single, kicad.LayerFMask, kicad.LayerFPaste}
	}

	topSolder := 2.0
	if pad.TopSolderExpansion != nil {
		topSolder = *pad.TopSolderExpansion
	}
	topPaste := 0.0
	if pad.TopPasteExpansion != nil {
		topPaste = *pad.TopPasteExpansion
	}
	solderMaskMargin := topSolder * scaleFactor
	solderPasteMargin := topPaste * scaleFactor
	kp.SolderMaskMargin = &solderMaskMargin
	kp.SolderPasteMargin = &solderPasteMargin

	toks, err := decodePathElements(pad.Path)
	if err != nil {
		return kp, err
	}
	switch {
	case len(toks) == 4 && toks[0].isString && toks[0].str == "RECT":
		kp.Shape = kicad.PadRect
		kp.SizeW = toks[1].num * scaleFactor
		kp.SizeH = toks[2].num * scaleFactor
	case len(toks) == 3 && toks[0].isString && (toks[0].str == "ELLIPSE" || toks[0].str == "OVAL"):
		kp.Shape = kicad.PadOval
		kp.SizeW = toks[1].num * scaleFactor
		kp.SizeH = toks[2].num * scaleFactor
	default:
		cmd := ""
		if len(toks) > 0 && toks[0].isString {
			cmd = toks[0].str
		}
		return kp, &UnsupportedPadShape{Command: cmd}
	}

	var holeArr []json.RawMessage
	if err := json.Unmarshal(pad.Hole, &holeArr); err == nil && len(holeArr) >= 3 {
		b.throughHole = true
		kp.Kind = kicad.PadThruHole
		var shapeName string
		_ = json.Unmarshal(holeArr[0], &shapeName)
		var p1, p2 float64
		_ = json.Unmarshal(holeArr[1], &p1)
		_ = json.Unmarshal(holeArr[2], &p2)

		holeRotation := 0.0
		if pad.HoleRotation != nil {
			holeRotation = *pad.HoleRotation
		}
		switch holeRotation {
		case 0:
		case 90, 270:
			p1, p2 = p2, p1
		case 180:
		default:
			return kp, &UnsupportedDrillRotation{Rotation: holeRotation}
		}

		offset := kicad.Position{X: pad.HoleOffsetX * scaleFactor, Y: -pad.HoleOffsetY * scaleFactor}
		var drill kicad.DrillDefinition
		if shapeName == "SLOT" {
			drill = kicad.DrillDefinition{Shape: kicad.DrillOval, Width: p1 * scaleFactor, Height: p2 * scaleFactor, Offset: &offset}
		} else {
			drill = kicad.DrillDefinition{Shape: kicad.DrillRound, Width: p2 * scaleFactor, Offset: &offset}
		}
		kp.Drill = &drill
	}

	return kp, nil
}
