package service

import (
	"strings"

	"swissdamed-migel/internal/migel/model"
)

const (
	TradeNamePrefix = "tradeName_"
	colBrand        = "companyName"
	colDevice       = "deviceName"
	colModel        = "modelName"
)

type tradeCol struct {
	idx  int
	lang model.Language
	all  bool // ANY, EN, other languages: every bucket
}

// QueryBuilder assembles match queries from flattened product rows.
type QueryBuilder struct {
	trade  []tradeCol
	brand  int
	device int
	mdl    int
}

// NewQueryBuilder resolves the product columns once per table.
func NewQueryBuilder(headers []string) *QueryBuilder {
	qb := &QueryBuilder{brand: -1, device: -1, mdl: -1}
	for i, h := range headers {
		switch {
		case strings.HasPrefix(h, TradeNamePrefix):
			tc := tradeCol{idx: i}
			switch strings.TrimPrefix(h, TradeNamePrefix) {
			case "DE":
				tc.lang = model.DE
			case "FR":
				tc.lang = model.FR
			case "IT":
				tc.lang = model.IT
			default:
				tc.all = true
			}
			qb.trade = append(qb.trade, tc)
		case h == colBrand:
			qb.brand = i
		case h == colDevice:
			qb.device = i
		case h == colModel:
			qb.mdl = i
		}
	}
	return qb
}

// Build routes language-tagged trade names to their bucket and broadcasts
// everything else (untagged trade names, device and model names).
func (qb *QueryBuilder) Build(row []string) model.Query {
	var b [model.LanguageCount]strings.Builder
	add := func(lang model.Language, v string) {
		b[lang].WriteByte(' ')
		b[lang].WriteString(v)
	}
	addAll := func(v string) {
		for _, lang := range model.Languages {
			add(lang, v)
		}
	}

	for _, tc := range qb.trade {
		v := at(row, tc.idx)
		if v == "" {
			continue
		}
		if tc.all {
			addAll(v)
		} else {
			add(tc.lang, v)
		}
	}
	if v := at(row, qb.device); v != "" {
		addAll(v)
	}
	if v := at(row, qb.mdl); v != "" {
		addAll(v)
	}

	var q model.Query
	for _, lang := range model.Languages {
		q.Desc[lang] = b[lang].String()
	}
	q.Brand = at(row, qb.brand)
	return q
}

func at(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
