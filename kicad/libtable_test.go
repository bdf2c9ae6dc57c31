package kicad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibTableRoundTrip(t *testing.T) {
	tbl := LibTable{
		Kind: "sym_lib_table",
		Entries: []LibTableEntry{
			{Name: "jlcrs", Kind: "KiCad", URI: "${KIPRJMOD}/jlcrs.kicad_sym", Options: "", Description: "imported parts"},
		},
	}
	n := tbl.Serialize()
	out, err := DeserializeLibTable(n)
	require.NoError(t, err)
	assert.Equal(t, tbl.Kind, out.Kind)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, tbl.Entries[0], out.Entries[0])
}

func TestLibTableHasLibrary(t *testing.T) {
	tbl := LibTable{Kind: "fp_lib_table", Entries: []LibTableEntry{{Name: "jlcrs"}}}
	assert.True(t, tbl.HasLibrary("jlcrs"))
	assert.False(t, tbl.HasLibrary("other"))
}

func TestLibTableWithLibraryUpsert(t *testing.T) {
	tbl := LibTable{Kind: "fp_lib_table"}
	tbl = tbl.WithLibrary(LibTableEntry{Name: "jlcrs", URI: "old"})
	require.Len(t, tbl.Entries, 1)
	assert.Equal(t, "old", tbl.Entries[0].URI)

	tbl = tbl.WithLibrary(LibTableEntry{Name: "jlcrs", URI: "new"})
	require.Len(t, tbl.Entries, 1)
	assert.Equal(t, "new", tbl.Entries[0].URI)

	tbl = tbl.WithLibrary(LibTableEntry{Name: "other", URI: "x"})
	assert.Len(t, tbl.Entries, 2)
}
