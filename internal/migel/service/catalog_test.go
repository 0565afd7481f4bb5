package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swissdamed-migel/internal/migel/model"
)

// migelRow lays out one sheet row: level at column B+depth, position in H,
// description in J, limitation in K.
func migelRow(depth int, pos, desc, lim string) []string {
	rec := make([]string, colLimitation+1)
	if depth >= 0 {
		rec[colLevelFirst+depth] = "x"
	}
	rec[colPositionNr] = pos
	rec[colDescription] = desc
	rec[colLimitation] = lim
	return rec
}

func TestSheetRows(t *testing.T) {
	cells := [][]string{
		{"header"},
		migelRow(0, "", "Absauggeräte", ""),
		migelRow(-1, " 01.01.00.00.1 ", " Sekretabsauggerät ", "Miete"),
		{"", "", "", "", "", "", "", "01.02"}, // short row
	}
	rows := SheetRows(cells)
	require.Len(t, rows, 3)

	assert.Empty(t, rows[0].PositionNr)
	assert.Equal(t, []string{"x", "", "", "", "", ""}, rows[0].Levels)

	assert.Equal(t, "01.01.00.00.1", rows[1].PositionNr)
	assert.Equal(t, "Sekretabsauggerät", rows[1].Description)
	assert.Equal(t, "Miete", rows[1].Limitation)
	assert.Nil(t, rows[1].Levels)

	assert.Equal(t, "01.02", rows[2].PositionNr)
	assert.Empty(t, rows[2].Description)

	assert.Nil(t, SheetRows([][]string{{"header only"}}))
}

func testSheets() [model.LanguageCount][]model.CatalogRow {
	var sheets [model.LanguageCount][]model.CatalogRow
	sheets[model.DE] = SheetRows([][]string{
		{"header"},
		migelRow(0, "", "Absauggeräte\nGruppe 01", ""),
		migelRow(1, "", "Sekretabsaugung", ""),
		migelRow(-1, "01.01.00.00.1", "Sekretabsauggerät\nfür Tracheostomie-Patienten, inklusive Zubehör", "Nur bei Tracheostomie"),
		migelRow(-1, "01.01.00.00.1", "Duplikat", ""),
		migelRow(0, "", "Bandagen", ""),
		migelRow(-1, "05.01.01.00.1", "Kniebandage", ""),
	})
	sheets[model.FR] = SheetRows([][]string{
		{"header"},
		migelRow(-1, "01.01.00.00.1", "Aspirateur de sécrétions\npour patients trachéotomisés", "Seulement trachéotomie"),
		migelRow(-1, "99.99.99.99.9", "Inconnu", ""),
	})
	return sheets
}

func TestBuildCatalog(t *testing.T) {
	items := NewExtractor(DefaultOptions()).BuildCatalog(testSheets())
	require.Len(t, items, 2)

	it := items[0]
	assert.Equal(t, "01.01.00.00.1", it.PositionNr)
	assert.Equal(t, "Sekretabsauggerät", it.DisplayText)
	assert.Equal(t, "Nur bei Tracheostomie", it.LimitationText)
	assert.Equal(t, []string{"Absauggeräte", "Sekretabsaugung"}, it.Category)

	assert.Equal(t, []string{"sekretabsauggeraet"}, it.Primary[model.DE])
	assert.Equal(t, []string{"inklusive", "patienten", "tracheostomie", "zubehoer"}, it.Secondary[model.DE])
	assert.Equal(t, []string{"aspirateur", "secretions"}, it.Primary[model.FR])
	assert.Equal(t, []string{"patients", "tracheotomises"}, it.Secondary[model.FR])
	assert.Nil(t, it.Primary[model.IT])

	assert.True(t, sort.StringsAreSorted(it.Index))
	assert.Subset(t, it.Index, []string{"sekretabsauggeraet", "tracheostomie", "aspirateur", "seulement", "tracheotomie"})
	assert.NotContains(t, it.Index, "nur")

	// a new level 0 header clears the deeper level
	assert.Equal(t, "05.01.01.00.1", items[1].PositionNr)
	assert.Equal(t, []string{"Bandagen"}, items[1].Category)
	assert.Nil(t, items[1].Primary[model.FR])
}

func TestNewCatalog(t *testing.T) {
	c := NewCatalog(testSheets(), DefaultOptions())
	require.Len(t, c.Items, 2)
	assert.Equal(t, []int{0}, c.Index.Lookup("aspirateur"))
	assert.Equal(t, []int{1}, c.Index.Lookup("kniebandage"))
}
