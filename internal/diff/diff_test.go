package diff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swissdamed-migel/internal/fileio"
)

var headers = []string{"udiDiCode", "tradeName_DE"}

func TestCompare(t *testing.T) {
	old := &fileio.Table{Headers: headers, Rows: [][]string{
		{"2", "Rollstuhl"},
		{"1", "Gehstock"},
		{"3", "Bandage"},
		{"4", "A"},
		{"4", "B"},
	}}
	cur := &fileio.Table{Headers: headers, Rows: [][]string{
		{"1", "Gehstock"},
		{"3", "Kniebandage"},
		{"5", "Orthese"},
		{"4", "B"},
		{"4", "A"},
	}}

	changes, err := Compare(old, cur)
	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Status: Added, Row: []string{"5", "Orthese"}},
		{Status: Removed, Row: []string{"2", "Rollstuhl"}},
		{Status: ChangedOld, Row: []string{"3", "Bandage"}},
		{Status: ChangedNew, Row: []string{"3", "Kniebandage"}},
	}, changes)
	assert.Equal(t, Summary{Added: 1, Removed: 1, Changed: 1}, Summarize(changes))
}

func TestCompareMultiRowKey(t *testing.T) {
	old := &fileio.Table{Headers: headers, Rows: [][]string{{"1", "A"}, {"1", "B"}}}
	cur := &fileio.Table{Headers: headers, Rows: [][]string{{"1", "A"}, {"1", "C"}}}

	changes, err := Compare(old, cur)
	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Status: ChangedOld, Row: []string{"1", "B"}},
		{Status: ChangedNew, Row: []string{"1", "C"}},
	}, changes)
}

func TestCompareIdentical(t *testing.T) {
	tbl := &fileio.Table{Headers: headers, Rows: [][]string{{"1", "A"}}}
	changes, err := Compare(tbl, tbl)
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, Summary{}, Summarize(changes))
}

func TestCompareErrors(t *testing.T) {
	a := &fileio.Table{Headers: headers}
	b := &fileio.Table{Headers: []string{"udiDiCode", "tradeName_FR"}}
	_, err := Compare(a, b)
	assert.ErrorIs(t, err, ErrHeaderMismatch)

	noKey := &fileio.Table{Headers: []string{"x"}}
	_, err = Compare(noKey, noKey)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestDateFromFilename(t *testing.T) {
	assert.Equal(t, "01.02.2026", DateFromFilename("out/swissdamed_01.02.2026.csv"))
	assert.Equal(t, "01.02.2026", DateFromFilename("01.02.2026.csv"))
	assert.Equal(t, "unknown", DateFromFilename("swissdamed_latest.csv"))
	assert.Equal(t, "unknown", DateFromFilename("swissdamed_2026-02-01.csv"))
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diff")
	changes := []Change{
		{Status: Added, Row: []string{"5", "Orthese"}},
		{Status: Removed, Row: []string{"2", "Rollstuhl"}},
	}

	path, err := WriteReport(dir, "swissdamed_01.01.2026.csv", "swissdamed_01.02.2026.csv", headers, changes)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "diff_swissdamed_01.01.2026_01.02.2026.csv"), path)

	tbl, err := fileio.ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{StatusColumn, "udiDiCode", "tradeName_DE"}, tbl.Headers)
	assert.Equal(t, [][]string{
		{"added", "5", "Orthese"},
		{"removed", "2", "Rollstuhl"},
	}, tbl.Rows)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
}
