package translate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SparkyTD/jlcrs/kicad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawPath(t *testing.T, items ...interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(items)
	require.NoError(t, err)
	return b
}

func TestDecodePolygonPathLine(t *testing.T) {
	raw := rawPath(t, 0.0, 0.0, "L", 100.0, 0.0)
	geom, err := DecodePolygonPath(raw)
	require.NoError(t, err)
	line, ok := geom.(PathLine)
	require.True(t, ok)
	assert.InDelta(t, 0, line.Start.X, 1e-9)
	assert.InDelta(t, 100*scaleFactor, line.End.X, 1e-9)
	assert.InDelta(t, 0, line.End.Y, 1e-9)
}

func TestDecodePolygonPathHollowPolygon(t *testing.T) {
	raw := rawPath(t, 0.0, 0.0, "L", 100.0, 0.0, "L", 100.0, 100.0, "L", 0.0, 100.0, "L", 0.0, 0.0)
	geom, err := DecodePolygonPath(raw)
	require.NoError(t, err)
	poly, ok := geom.(PathPolygon)
	require.True(t, ok)
	assert.Len(t, poly.Points, 5)
}

func TestDecodePolygonPathCircle(t *testing.T) {
	raw := rawPath(t, "CIRCLE", 10.0, 20.0, 5.0)
	geom, err := DecodePolygonPath(raw)
	require.NoError(t, err)
	circle, ok := geom.(PathCircle)
	require.True(t, ok)
	assert.InDelta(t, 10*scaleFactor, circle.Center.X, 1e-9)
	assert.InDelta(t, -20*scaleFactor, circle.Center.Y, 1e-9)
	assert.InDelta(t, 5*scaleFactor, circle.Radius, 1e-9)
}

// circumcenter returns the center of the circle through three points, by
// intersecting two perpendicular bisectors.
func circumcenter(a, b, c kicad.Position) (kicad.Position, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return kicad.Position{}, false
	}
	ux := ((a.X*a.X+a.Y*a.Y)*(b.Y-c.Y) + (b.X*b.X+b.Y*b.Y)*(c.Y-a.Y) + (c.X*c.X+c.Y*c.Y)*(a.Y-b.Y)) / d
	uy := ((a.X*a.X+a.Y*a.Y)*(c.X-b.X) + (b.X*b.X+b.Y*b.Y)*(a.X-c.X) + (c.X*c.X+c.Y*c.Y)*(b.X-a.X)) / d
	return kicad.Position{X: ux, Y: uy}, true
}

// TestArcMidpointOnCircle checks that a 90 degree ARC's reconstructed
// midpoint lies on the circle implied by its chord and sweep, per
// spec.md §8 item 6: start, mid and end must be concyclic.
func TestArcMidpointOnCircle(t *testing.T) {
	raw := rawPath(t, 0.0, 0.0, "ARC", -90.0, 0.0, -100.0)
	geom, err := DecodePolygonPath(raw)
	require.NoError(t, err)
	arc, ok := geom.(PathArc)
	require.True(t, ok)

	center, ok := circumcenter(arc.Start, arc.Mid, arc.End)
	require.True(t, ok)

	rStart := math.Hypot(arc.Start.X-center.X, arc.Start.Y-center.Y)
	rMid := math.Hypot(arc.Mid.X-center.X, arc.Mid.Y-center.Y)
	rEnd := math.Hypot(arc.End.X-center.X, arc.End.Y-center.Y)
	assert.InDelta(t, rStart, rMid, 1e-6)
	assert.InDelta(t, rStart, rEnd, 1e-6)
}

func TestDecodePolygonPathCarcNotNegated(t *testing.T) {
	rawArc := rawPath(t, 0.0, 0.0, "ARC", 90.0, 100.0, 0.0)
	rawCarc := rawPath(t, 0.0, 0.0, "CARC", -90.0, 100.0, 0.0)

	gArc, err := DecodePolygonPath(rawArc)
	require.NoError(t, err)
	gCarc, err := DecodePolygonPath(rawCarc)
	require.NoError(t, err)

	arc := gArc.(PathArc)
	carc := gCarc.(PathArc)
	assert.InDelta(t, arc.Mid.X, carc.Mid.X, 1e-9)
	assert.InDelta(t, arc.Mid.Y, carc.Mid.Y, 1e-9)
}

func TestDecodePolygonPathUnsupported(t *testing.T) {
	raw := rawPath(t, "WHATEVER", 1.0, 2.0)
	_, err := DecodePolygonPath(raw)
	require.Error(t, err)
	var target *UnsupportedElement
	require.ErrorAs(t, err, &target)
}
