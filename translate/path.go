package translate

import (
	"encoding/json"
	"math"

	"github.com/SparkyTD/jlcrs/kicad"
)

// scaleFactor converts EasyEDA's footprint units (1 mil) to millimeters,
// per spec.md §4.7.
const scaleFactor = 0.0254

// pathElement is one token of a decoded FILL/POLY path array: either a
// command string ("L", "ARC", "CARC", "CIRCLE") or a numeric coordinate.
type pathElement struct {
	isString bool
	str      string
	num      float64
}

func decodePathElements(raw json.RawMessage) ([]pathElement, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &UnsupportedPadShape{Command: "<malformed path>"}
	}
	out := make([]pathElement, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, pathElement{isString: true, str: s})
			continue
		}
		var f float64
		if err := json.Unmarshal(item, &f); err == nil {
			out = append(out, pathElement{num: f})
			continue
		}
	}
	return out, nil
}

// PathLine, PathPolygon, PathCircle and PathArc are the geometry kinds a
// FILL/POLY path decodes to, per footprint.rs's dispatch: a 5-element
// path with an "L" command is a simple line; a longer run of "L"-joined
// coordinates is a hollow polygon; a 4-element "CIRCLE"-led path is a
// circle; a 6-element path with "ARC"/"CARC" at index 2 is a single arc.
type PathLine struct{ Start, End kicad.Position }
type PathPolygon struct{ Points []kicad.Position }
type PathCircle struct {
	Center kicad.Position
	Radius float64
}
type PathArc struct{ Start, Mid, End kicad.Position }

// DecodePolygonPath classifies and builds the geometry for one FILL/POLY
// path array, applying the y = -raw_y*scaleFactor convention shared by
// every coordinate EasyEDA emits.
func DecodePolygonPath(raw json.RawMessage) (interface{}, error) {
	toks, err := decodePathElements(raw)
	if err != nil {
		return nil, err
	}
	pt := func(xi, yi int) kicad.Position {
		return kicad.Position{X: toks[xi].num * scaleFactor, Y: -toks[yi].num * scaleFactor}
	}

	switch {
	case len(toks) == 5 && toks[2].isString && toks[2].str == "L":
		return PathLine{Start: pt(0, 1), End: pt(3, 4)}, nil
	case len(toks) >= 3 && toks[2].isString && toks[2].str == "L":
		var pts []kicad.Position
		var nums []float64
		for _, t := range toks {
			if t.isString {
				if t.str != "L" {
					return nil, &UnsupportedElement{Kind: "polygon path"}
				}
				continue
			}
			nums = append(nums, t.num)
		}
		for i := 0; i+1 < len(nums); i += 2 {
			pts = append(pts, kicad.Position{X: nums[i] * scaleFactor, Y: -nums[i+1] * scaleFactor})
		}
		return PathPolygon{Points: pts}, nil
	case len(toks) == 4 && toks[0].isString && toks[0].str == "CIRCLE":
		return PathCircle{
			Center: kicad.Position{X: toks[1].num * scaleFactor, Y: -toks[2].num * scaleFactor},
			Radius: toks[3].num * scaleFactor,
		}, nil
	case len(toks) == 6 && toks[2].isString && toks[2].str == "ARC":
		start := pt(0, 1)
		end := pt(4, 5)
		rotation := -toks[3].num
		mid := arcMidpoint(start, end, rotation)
		return PathArc{Start: start, Mid: mid, End: end}, nil
	case len(toks) == 6 && toks[2].isString && toks[2].str == "CARC":
		start := pt(0, 1)
		end := pt(4, 5)
		rotation := toks[3].num
		mid := arcMidpoint(start, end, rotation)
		return PathArc{Start: start, Mid: mid, End: end}, nil
	default:
		return nil, &UnsupportedElement{Kind: "polygon path"}
	}
}

// arcMidpoint reconstructs an arc's midpoint from its chord endpoints and
// sweep angle in degrees, by the chord-midpoint/perpendicular-offset
// method: a single half-angle formula that relies on sin/cos's natural
// sign behavior for rotation in (-360, 0) ∪ (0, 360), rather than
// branching on whether the sweep exceeds 180 degrees.
func arcMidpoint(start, end kicad.Position, rotationDeg float64) kicad.Position {
	chordMidX := (start.X + end.X) / 2
	chordMidY := (start.Y + end.Y) / 2
	chordDX := end.X - start.X
	chordDY := end.Y - start.Y
	chordLen := math.Hypot(chordDX, chordDY)

	rotationRad := rotationDeg * math.Pi / 180
	half := rotationRad / 2

	radius := (chordLen / 2) / math.Abs(math.Sin(half))
	perpDX := -chordDY / chordLen
	perpDY := chordDX / chordLen
	centerDistance := (chordLen / 2) / math.Tan(half)

	centerX := chordMidX + perpDX*centerDistance
	centerY := chordMidY + perpDY*centerDistance

	startAngle := math.Atan2(start.Y-centerY, start.X-centerX)
	midAngle := startAngle + half

	return kicad.Position{
		X: centerX + radius*math.Cos(midAngle),
		Y: centerY + radius*math.Sin(midAngle),
	}
}
