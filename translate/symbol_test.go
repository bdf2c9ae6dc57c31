package translate

import (
	"strings"
	"testing"

	"github.com/SparkyTD/jlcrs/easyeda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSymbolFixture(t *testing.T, lines ...string) *easyeda.SymbolDocument {
	t.Helper()
	doc, err := easyeda.DecodeSymbol(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return doc
}

func TestTranslateSymbolSingleUnit(t *testing.T) {
	doc := decodeSymbolFixture(t,
		`["DOCTYPE","SYMBOL","1"]`,
		`["HEAD",{"symbolType":0,"originX":0,"originY":0,"version":"1.0"}]`,
		`["PART","R1",{"BBOX":[0,0,10,10]}]`,
		`["RECT","rect0",1,1,9,9,0,0,0,"style0",false]`,
		`["PIN","pin0",true,null,0,0,5,0,null,0,false]`,
		`["ATTR","attr0","pin0","NAME","A",true,true,null,null,null,"style0",false]`,
		`["ATTR","attr1","pin0","NUMBER","1",true,true,null,null,null,"style0",false]`,
	)

	sym, err := TranslateSymbol(doc)
	require.NoError(t, err)
	assert.Equal(t, "R1", sym.ID)
	assert.True(t, sym.InBOM)
	assert.True(t, sym.OnBoard)
	require.Len(t, sym.Rectangles, 1)
	require.Len(t, sym.Pins, 1)
	assert.Equal(t, "A", *sym.Pins[0].Name)
	assert.Equal(t, "1", *sym.Pins[0].Number)
}

func TestTranslateSymbolMultiUnit(t *testing.T) {
	doc := decodeSymbolFixture(t,
		`["DOCTYPE","SYMBOL","1"]`,
		`["HEAD",{"symbolType":0,"originX":0,"originY":0,"version":"1.0"}]`,
		`["PART","U1.1",{"BBOX":[0,0,10,10]}]`,
		`["PART","U1.2",{"BBOX":[0,0,10,10]}]`,
	)

	sym, err := TranslateSymbol(doc)
	require.NoError(t, err)
	assert.Equal(t, "U1", sym.ID)
	require.Len(t, sym.Units, 2)
	assert.Equal(t, "U1_1_1", sym.Units[0].ID)
	assert.Equal(t, "U1_2_1", sym.Units[1].ID)
}

func TestTranslateSymbolNonConsecutiveUnitsRejected(t *testing.T) {
	doc := decodeSymbolFixture(t,
		`["DOCTYPE","SYMBOL","1"]`,
		`["HEAD",{"symbolType":0,"originX":0,"originY":0,"version":"1.0"}]`,
		`["PART","U1.1",{"BBOX":[0,0,10,10]}]`,
		`["PART","U1.3",{"BBOX":[0,0,10,10]}]`,
	)

	_, err := TranslateSymbol(doc)
	require.Error(t, err)
	var target *UnitLayout
	require.ErrorAs(t, err, &target)
	assert.Equal(t, IncorrectUnitNumIdentifier, target.Reason)
}

func TestTranslateSymbolMalformedUnitID(t *testing.T) {
	doc := decodeSymbolFixture(t,
		`["DOCTYPE","SYMBOL","1"]`,
		`["HEAD",{"symbolType":0,"originX":0,"originY":0,"version":"1.0"}]`,
		`["PART","U1.x",{"BBOX":[0,0,10,10]}]`,
		`["PART","U1.2",{"BBOX":[0,0,10,10]}]`,
	)

	_, err := TranslateSymbol(doc)
	require.Error(t, err)
	var target *UnitLayout
	require.ErrorAs(t, err, &target)
	assert.Equal(t, IncorrectUnitNumIdentifier, target.Reason)
}

func TestTranslateSymbolUnequalEllipseRejected(t *testing.T) {
	doc := decodeSymbolFixture(t,
		`["DOCTYPE","SYMBOL","1"]`,
		`["HEAD",{"symbolType":0,"originX":0,"originY":0,"version":"1.0"}]`,
		`["PART","R1",{"BBOX":[0,0,10,10]}]`,
		`["ELLIPSE","e0",5,5,3,2,"style0",false]`,
	)

	_, err := TranslateSymbol(doc)
	require.Error(t, err)
	var target *UnsupportedElement
	require.ErrorAs(t, err, &target)
}
