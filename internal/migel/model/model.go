package model

// Language is one of the catalog's sheet languages.
type Language int

const (
	DE Language = iota
	FR
	IT
	LanguageCount
)

// Languages in scoring/tie-break order.
var Languages = [LanguageCount]Language{DE, FR, IT}

func (l Language) String() string {
	switch l {
	case DE:
		return "DE"
	case FR:
		return "FR"
	case IT:
		return "IT"
	default:
		return "?"
	}
}

// Keywords holds one keyword set per language. A language without a sheet
// row stays nil and scores zero.
type Keywords [LanguageCount][]string

// CatalogRow is one raw row of a catalog language sheet.
type CatalogRow struct {
	PositionNr  string   // H: Positions-Nr., empty on category headers
	Description string   // J: Bezeichnung, multi-line
	Limitation  string   // K: Limitation
	Levels      []string // B..G hierarchy cells (only read on header rows)
}

// CatalogItem is an immutable MiGeL entry.
type CatalogItem struct {
	PositionNr     string   `json:"positionNr"`
	DisplayText    string   `json:"bezeichnung"` // first description line
	LimitationText string   `json:"limitation"`
	Category       []string `json:"category,omitempty"`

	Primary   Keywords `json:"-"` // first line, len >= 3
	Secondary Keywords `json:"-"` // later lines, len >= 8
	Index     []string `json:"-"` // every language, full text + limitation
}

// Query is one product row split into language buckets.
type Query struct {
	Desc  [LanguageCount]string
	Brand string
}

// Score is the per-language result of scoring one candidate.
type Score struct {
	Ratio  float64 // primary matched weight / primary total weight
	MaxLen int     // longest matched keyword (primary or secondary)
	Count  int     // matched primary + secondary keywords
}
