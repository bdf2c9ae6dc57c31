package importer

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFilesystem struct {
	files map[string][]byte
}

func newMemFilesystem() *memFilesystem {
	return &memFilesystem{files: map[string][]byte{}}
}

func (m *memFilesystem) Read(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &notFoundError{path}
	}
	return data, nil
}

func (m *memFilesystem) Write(path string, data []byte) error {
	m.files[path] = data
	return nil
}

func (m *memFilesystem) Mkdirs(path string) error { return nil }

func (m *memFilesystem) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

type notFoundError struct{ path string }

func (e *notFoundError) Error() string { return "not found: " + e.path }

type fakeFetcher struct {
	byURLSubstring map[string][]byte
}

func (f *fakeFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	for substr, body := range f.byURLSubstring {
		if strings.Contains(url, substr) {
			return body, nil
		}
	}
	return nil, &notFoundError{url}
}

func testSymbolPayload() string {
	return strings.Join([]string{
		`["DOCTYPE","SYMBOL","1"]`,
		`["HEAD",{"symbolType":0,"originX":0,"originY":0,"version":"1.0"}]`,
		`["PART","R1",{"BBOX":[0,0,10,10]}]`,
		`["RECT","rect0",1,1,9,9,0,0,0,"style0",false]`,
		`["PIN","pin0",true,null,0,0,5,0,null,0,false]`,
		`["ATTR","attr0","pin0","NAME","A",true,true,null,null,null,"style0",false]`,
		`["ATTR","attr1","pin0","NUMBER","1",true,true,null,null,null,"style0",false]`,
	}, "\n")
}

func testFootprintPayload() string {
	return strings.Join([]string{
		`["DOCTYPE","FOOTPRINT","1"]`,
		`["HEAD",{"editorVersion":"6.4","importFlag":1,"uuid":"abc","source":"EasyEDA","title":"R_0402"}]`,
		`["CANVAS",0,0,"mm",10,10,1,1]`,
		`["LAYER","1","TOP","F.Cu","normal","#ff0000",1,"#ff0000",1]`,
		`["PAD","pad0","g0","net0","1","1",1.5,2.5,90,null,["RECT",1.2,0.8,0],null,0,0,null,true,"SMD",2,2,0,0,false]`,
	}, "\n")
}

func testProductBody(t *testing.T, code, mpn string) []byte {
	t.Helper()
	resp := productSearchResponse{
		Success: true,
		Result: productSearchResult{
			ProductList: []productInfo{
				{
					MPN:    mpn,
					Number: code,
					DeviceInfo: deviceInfo{
						Attributes:  map[string]string{"Value": "10k"},
						Description: "a test resistor",
						SymbolInfo:  dataInfo{DataStr: testSymbolPayload()},
						FootprintInfo: footprintInfo{
							DataStr: testFootprintPayload(),
						},
					},
				},
			},
		},
	}
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	return body
}

func newTestDeps(t *testing.T, code, mpn string) (Deps, *memFilesystem) {
	fs := newMemFilesystem()
	fetcher := &fakeFetcher{byURLSubstring: map[string][]byte{
		"product/search": testProductBody(t, code, mpn),
	}}
	return Deps{FS: fs, Fetcher: fetcher, Step: NoopStepBoundingBox{}}, fs
}

func TestImportCreatesNewLibrary(t *testing.T) {
	deps, fs := newTestDeps(t, "C12345", "R1206")
	opts := Options{Code: "C12345", Name: "JLCPCB", ProjectRoot: "/proj"}

	err := Import(context.Background(), deps, opts)
	require.NoError(t, err)

	require.True(t, fs.Exists("/proj/JLCPCB.kicad_sym"))
	require.True(t, fs.Exists("/proj/JLCPCB.pretty/R1206.kicad_mod"))
	require.True(t, fs.Exists("/proj/sym-lib-table"))
	require.True(t, fs.Exists("/proj/fp-lib-table"))

	symData := string(fs.files["/proj/JLCPCB.kicad_sym"])
	assert.Contains(t, symData, "R1206")
	assert.Contains(t, symData, "LCSC")

	symTableData := string(fs.files["/proj/sym-lib-table"])
	assert.Contains(t, symTableData, "JLCPCB")
}

func TestImportRefusesDuplicateWithoutUpdate(t *testing.T) {
	deps, _ := newTestDeps(t, "C12345", "R1206")
	opts := Options{Code: "C12345", Name: "JLCPCB", ProjectRoot: "/proj"}

	require.NoError(t, Import(context.Background(), deps, opts))
	err := Import(context.Background(), deps, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--update")
}

func TestImportUpdatesWithUpdateFlag(t *testing.T) {
	deps, _ := newTestDeps(t, "C12345", "R1206")
	opts := Options{Code: "C12345", Name: "JLCPCB", ProjectRoot: "/proj"}

	require.NoError(t, Import(context.Background(), deps, opts))
	opts.Update = true
	require.NoError(t, Import(context.Background(), deps, opts))
}

func TestNormalizeLCSCCodeInvalid(t *testing.T) {
	_, err := normalizeLCSCCode("X123")
	require.Error(t, err)

	got, err := normalizeLCSCCode("C00123")
	require.NoError(t, err)
	assert.Equal(t, "C123", got)
}
