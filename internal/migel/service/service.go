package service

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"swissdamed-migel/internal/migel/model"
)

// Extra columns appended to matched product rows.
var MatchColumns = []string{"migel_code", "migel_bezeichnung", "migel_limitation"}

// Catalog bundles the items with their index.
type Catalog struct {
	Items []model.CatalogItem
	Index *Index
}

// NewCatalog extracts the items from the language sheets and indexes them.
func NewCatalog(sheets [model.LanguageCount][]model.CatalogRow, opt Options) *Catalog {
	items := NewExtractor(opt).BuildCatalog(sheets)
	return &Catalog{Items: items, Index: BuildIndex(items)}
}

// MatchRows matches every product row on up to workers goroutines.
// out[i] belongs to rows[i] and is nil when nothing matched.
func MatchRows(ctx context.Context, m *Matcher, qb *QueryBuilder, rows [][]string, workers int) ([]*model.CatalogItem, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]*model.CatalogItem, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = m.FindBestMatch(qb.Build(rows[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendMatched keeps only matched rows, each extended by MatchColumns.
func AppendMatched(rows [][]string, matches []*model.CatalogItem) [][]string {
	var out [][]string
	for i, it := range matches {
		if it == nil {
			continue
		}
		row := make([]string, 0, len(rows[i])+len(MatchColumns))
		row = append(row, rows[i]...)
		row = append(row, it.PositionNr, it.DisplayText, it.LimitationText)
		out = append(out, row)
	}
	return out
}
