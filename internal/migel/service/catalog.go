package service

import (
	"strings"

	"swissdamed-migel/internal/migel/model"
)

// MiGeL sheet layout (0-based columns).
const (
	colLevelFirst  = 1 // B
	colLevelLast   = 6 // G
	colPositionNr  = 7 // H
	colDescription = 9 // J
	colLimitation  = 10
)

// SheetRows converts raw sheet cells into catalog rows. Row 0 is the header.
func SheetRows(cells [][]string) []model.CatalogRow {
	if len(cells) <= 1 {
		return nil
	}
	out := make([]model.CatalogRow, 0, len(cells)-1)
	for _, rec := range cells[1:] {
		row := model.CatalogRow{
			PositionNr:  cell(rec, colPositionNr),
			Description: cell(rec, colDescription),
			Limitation:  cell(rec, colLimitation),
		}
		if row.PositionNr == "" {
			row.Levels = make([]string, colLevelLast-colLevelFirst+1)
			for i := range row.Levels {
				row.Levels[i] = cell(rec, colLevelFirst+i)
			}
		}
		out = append(out, row)
	}
	return out
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// BuildCatalog builds the items from the per-language sheets. sheets[model.DE]
// defines the items; FR/IT rows only enrich items with a known position
// number. A missing language leaves its keyword sets empty.
func (e *Extractor) BuildCatalog(sheets [model.LanguageCount][]model.CatalogRow) []model.CatalogItem {
	var (
		items    []model.CatalogItem
		byPos    = make(map[string]int)
		category = make([]string, colLevelLast-colLevelFirst+1)
	)

	for _, row := range sheets[model.DE] {
		if row.PositionNr == "" {
			trackCategory(category, row)
			continue
		}
		if _, dup := byPos[row.PositionNr]; dup {
			continue
		}
		first := strings.TrimSpace(firstLine(row.Description))
		item := model.CatalogItem{
			PositionNr:     row.PositionNr,
			DisplayText:    first,
			LimitationText: row.Limitation,
			Category:       categoryPath(category),
		}
		item.Primary[model.DE] = e.FirstLine(first)
		item.Secondary[model.DE] = e.Secondary(row.Description)
		item.Index = mergeKeywords(e.FullText(row.Description), e.FullText(row.Limitation))

		byPos[row.PositionNr] = len(items)
		items = append(items, item)
	}

	for _, lang := range []model.Language{model.FR, model.IT} {
		for _, row := range sheets[lang] {
			i, ok := byPos[row.PositionNr]
			if !ok || row.PositionNr == "" {
				continue
			}
			it := &items[i]
			it.Primary[lang] = e.FirstLine(row.Description)
			it.Secondary[lang] = e.Secondary(row.Description)
			it.Index = mergeKeywords(it.Index, e.FullText(row.Description), e.FullText(row.Limitation))
		}
	}
	return items
}

// trackCategory updates the hierarchy from a header row: the deepest filled
// level takes the row's first description line, deeper levels are cleared.
func trackCategory(category []string, row model.CatalogRow) {
	for i := len(row.Levels) - 1; i >= 0; i-- {
		if row.Levels[i] == "" {
			continue
		}
		category[i] = strings.TrimSpace(firstLine(row.Description))
		for j := i + 1; j < len(category); j++ {
			category[j] = ""
		}
		return
	}
}

func categoryPath(category []string) []string {
	var out []string
	for _, c := range category {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
