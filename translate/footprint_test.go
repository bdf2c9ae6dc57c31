package translate

import (
	"strings"
	"testing"

	"github.com/SparkyTD/jlcrs/easyeda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFootprintFixture(t *testing.T, lines ...string) *easyeda.FootprintDocument {
	t.Helper()
	doc, err := easyeda.DecodeFootprint(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return doc
}

func TestTranslateFootprintSMDPad(t *testing.T) {
	doc := decodeFootprintFixture(t,
		`["DOCTYPE","FOOTPRINT","1"]`,
		`["HEAD",{"editorVersion":"6.4","importFlag":1,"uuid":"abc","source":"EasyEDA","title":"SOIC-8"}]`,
		`["CANVAS",0,0,"mm",10,10,1,1]`,
		`["LAYER","1","TOP","F.Cu","normal","#ff0000",1,"#ff0000",1]`,
		`["PAD","pad0","g0","net0","1","1",1.5,2.5,90,null,["RECT",1.2,0.8,0],null,0,0,null,true,"SMD",2,2,0,0,false]`,
	)

	fp, err := TranslateFootprint(doc, "SOIC-8")
	require.NoError(t, err)
	require.Len(t, fp.Pads, 1)
	pad := fp.Pads[0]
	assert.Equal(t, "1", pad.Name)
	assert.InDelta(t, 1.5*scaleFactor, pad.Position.X, 1e-9)
	assert.InDelta(t, -2.5*scaleFactor, pad.Position.Y, 1e-9)
	assert.Equal(t, "smd", string(pad.Kind))
	assert.Equal(t, "rect", string(pad.Shape))
	assert.Equal(t, "SOIC-8", fp.Name)
	assert.Equal(t, "smd", fp.Attribute)
	require.Len(t, fp.Properties, 2)
}

func TestTranslateFootprintThruHolePad(t *testing.T) {
	doc := decodeFootprintFixture(t,
		`["DOCTYPE","FOOTPRINT","1"]`,
		`["HEAD",{"editorVersion":"6.4","importFlag":1,"uuid":"abc","source":"EasyEDA","title":"DIP-8"}]`,
		`["CANVAS",0,0,"mm",10,10,1,1]`,
		`["LAYER","11","MULTI","Multi-Layer","normal","#ff0000",1,"#ff0000",1]`,
		`["PAD","pad0","g0","net0","11","1",0,0,0,["ROUND",0.8,0.8],["ELLIPSE",1.6,1.6],null,0,0,null,true,"THT",2,2,0,0,false]`,
	)

	fp, err := TranslateFootprint(doc, "DIP-8")
	require.NoError(t, err)
	require.Len(t, fp.Pads, 1)
	pad := fp.Pads[0]
	assert.Equal(t, "thru_hole", string(pad.Kind))
	assert.Equal(t, "oval", string(pad.Shape))
	require.NotNil(t, pad.Drill)
	assert.Equal(t, "round", string(pad.Drill.Shape))
	assert.Equal(t, "through_hole", fp.Attribute)
}

func TestTranslateFootprintSlotHoleRotationSwapsDimensions(t *testing.T) {
	doc := decodeFootprintFixture(t,
		`["DOCTYPE","FOOTPRINT","1"]`,
		`["HEAD",{"editorVersion":"6.4","importFlag":1,"uuid":"abc","source":"EasyEDA","title":"DIP-8"}]`,
		`["CANVAS",0,0,"mm",10,10,1,1]`,
		`["LAYER","11","MULTI","Multi-Layer","normal","#ff0000",1,"#ff0000",1]`,
		`["PAD","pad0","g0","net0","11","1",0,0,0,["SLOT",1.0,0.5],["ELLIPSE",1.6,1.6],null,0,0,90,true,"THT",2,2,0,0,false]`,
	)

	fp, err := TranslateFootprint(doc, "DIP-8")
	require.NoError(t, err)
	require.Len(t, fp.Pads, 1)
	drill := fp.Pads[0].Drill
	require.NotNil(t, drill)
	assert.InDelta(t, 0.5*scaleFactor, drill.Width, 1e-9)
	assert.InDelta(t, 1.0*scaleFactor, drill.Height, 1e-9)
}

func TestTranslateFootprintUnsupportedHoleRotationRejected(t *testing.T) {
	doc := decodeFootprintFixture(t,
		`["DOCTYPE","FOOTPRINT","1"]`,
		`["HEAD",{"editorVersion":"6.4","importFlag":1,"uuid":"abc","source":"EasyEDA","title":"DIP-8"}]`,
		`["CANVAS",0,0,"mm",10,10,1,1]`,
		`["LAYER","11","MULTI","Multi-Layer","normal","#ff0000",1,"#ff0000",1]`,
		`["PAD","pad0","g0","net0","11","1",0,0,0,["SLOT",1.0,0.5],["ELLIPSE",1.6,1.6],null,0,0,45,true,"THT",2,2,0,0,false]`,
	)

	_, err := TranslateFootprint(doc, "DIP-8")
	require.Error(t, err)
	var target *UnsupportedDrillRotation
	require.ErrorAs(t, err, &target)
	assert.Equal(t, 45.0, target.Rotation)
}

func TestTranslateFootprintUnsupportedPadShape(t *testing.T) {
	doc := decodeFootprintFixture(t,
		`["DOCTYPE","FOOTPRINT","1"]`,
		`["HEAD",{"editorVersion":"6.4","importFlag":1,"uuid":"abc","source":"EasyEDA","title":"X"}]`,
		`["CANVAS",0,0,"mm",10,10,1,1]`,
		`["LAYER","1","TOP","F.Cu","normal","#ff0000",1,"#ff0000",1]`,
		`["PAD","pad0","g0","net0","1","1",0,0,0,null,["POLYGON",1,1],null,0,0,null,true,"SMD",2,2,0,0,false]`,
	)

	_, err := TranslateFootprint(doc, "X")
	require.Error(t, err)
	var target *UnsupportedPadShape
	require.ErrorAs(t, err, &target)
}

func TestTranslateFootprintMechanicalCircleFillBecomesNPTHPad(t *testing.T) {
	doc := decodeFootprintFixture(t,
		`["DOCTYPE","FOOTPRINT","1"]`,
		`["HEAD",{"editorVersion":"6.4","importFlag":1,"uuid":"abc","source":"EasyEDA","title":"X"}]`,
		`["CANVAS",0,0,"mm",10,10,1,1]`,
		`["LAYER","11","MULTI","Multi-Layer","normal","#ff0000",1,"#ff0000",1]`,
		`["FILL","fill0","g0","","11",0,"solid",["CIRCLE",10,10,2],false]`,
	)

	fp, err := TranslateFootprint(doc, "X")
	require.NoError(t, err)
	require.Len(t, fp.Pads, 1)
	assert.Equal(t, "np_thru_hole", string(fp.Pads[0].Kind))
	assert.Equal(t, "through_hole", fp.Attribute)
}
