package service

import (
	"fmt"
	"io"
	"os"

	"swissdamed-migel/internal/fileio"
	"swissdamed-migel/internal/migel/model"
)

// LoadCatalogFile reads a MiGeL workbook (sheets DE, FR, IT) from disk.
func LoadCatalogFile(path string, opt Options) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f, path, opt)
}

// LoadCatalog parses a workbook; filename selects the format. Sheets past
// the third are ignored, missing ones leave that language empty.
func LoadCatalog(r io.Reader, filename string, opt Options) (*Catalog, error) {
	sheets, err := fileio.ReadWorkbook(r, filename)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	var rows [model.LanguageCount][]model.CatalogRow
	for _, lang := range model.Languages {
		if int(lang) < len(sheets) {
			rows[lang] = SheetRows(sheets[lang])
		}
	}
	return NewCatalog(rows, opt), nil
}
