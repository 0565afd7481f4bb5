package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swissdamed-migel/internal/migel/model"
)

type testItem struct {
	pos       string
	lang      model.Language
	primary   []string
	secondary []string
}

func newTestMatcher(defs ...testItem) *Matcher {
	items := make([]model.CatalogItem, len(defs))
	for i, s := range defs {
		items[i].PositionNr = s.pos
		items[i].Primary[s.lang] = s.primary
		items[i].Secondary[s.lang] = s.secondary
		items[i].Index = mergeKeywords(s.primary, s.secondary)
	}
	return NewMatcher(items, nil, DefaultOptions())
}

func de(text string) model.Query {
	var q model.Query
	q.Desc[model.DE] = text
	return q
}

func fr(text string) model.Query {
	var q model.Query
	q.Desc[model.FR] = text
	return q
}

func words(text string) [model.LanguageCount][]string {
	var w [model.LanguageCount][]string
	for _, lang := range model.Languages {
		w[lang] = SplitWords(Fold(text))
	}
	return w
}

func TestFindBestMatchFullHit(t *testing.T) {
	m := newTestMatcher(testItem{pos: "10.01.01.00.1", primary: []string{"manuell", "rollstuhl"}})

	got := m.FindBestMatch(de("Rollstuhl manuell faltbar"))
	require.NotNil(t, got)
	assert.Equal(t, "10.01.01.00.1", got.PositionNr)

	s := m.scoreItem(&m.items[0], words("Rollstuhl manuell faltbar"))
	assert.Equal(t, model.Score{Ratio: 1, MaxLen: 9, Count: 2}, s)
}

func TestFindBestMatchNoCandidate(t *testing.T) {
	m := newTestMatcher(testItem{pos: "1", primary: []string{"manuell", "rollstuhl"}})

	assert.Nil(t, m.FindBestMatch(de("Faltbar klappbar")))
	assert.Empty(t, m.idx.candidates("faltbar klappbar", m.opt.FuzzyMinLen))
}

func TestLanguageIsolation(t *testing.T) {
	m := newTestMatcher(testItem{pos: "1", lang: model.FR, primary: []string{"bas", "pression"}})

	// substring makes it a candidate, but German words never meet French keywords
	assert.Equal(t, []int{0}, m.idx.candidates(Fold("Kompressionsschraube"), m.opt.FuzzyMinLen))
	assert.Nil(t, m.FindBestMatch(de("Kompressionsschraube")))

	got := m.FindBestMatch(fr("Bas de pression"))
	require.NotNil(t, got)
	assert.Equal(t, "1", got.PositionNr)
}

func TestSuffixOnlyForGerman(t *testing.T) {
	kws := []string{"oculaire", "prothese"}

	deM := newTestMatcher(testItem{pos: "1", lang: model.DE, primary: kws})
	assert.NotNil(t, deM.FindBestMatch(de("Endoprothese oculaire")))

	frM := newTestMatcher(testItem{pos: "1", lang: model.FR, primary: kws})
	assert.Nil(t, frM.FindBestMatch(fr("Endoprothese oculaire")))
}

func TestGermanFuzzyAndCompound(t *testing.T) {
	m := newTestMatcher(
		testItem{pos: "knie", primary: []string{"knie", "orthesen"}},
		testItem{pos: "kath", primary: []string{"katheter", "urin"}},
	)

	got := m.FindBestMatch(de("Knie Orthese"))
	require.NotNil(t, got)
	assert.Equal(t, "knie", got.PositionNr)

	got = m.FindBestMatch(de("Verweilkatheter Urin"))
	require.NotNil(t, got)
	assert.Equal(t, "kath", got.PositionNr)
}

func TestSecondaryRequiresPrimary(t *testing.T) {
	m := newTestMatcher(testItem{
		pos:       "1",
		primary:   []string{"elektrobett"},
		secondary: []string{"antidekubitusmatratze"},
	})

	assert.Nil(t, m.FindBestMatch(de("Antidekubitusmatratze Komfort")))

	s := m.scoreItem(&m.items[0], words("Elektrobett mit Antidekubitusmatratze"))
	assert.Equal(t, model.Score{Ratio: 1, MaxLen: 21, Count: 2}, s)
	assert.NotNil(t, m.FindBestMatch(de("Elektrobett mit Antidekubitusmatratze")))
}

func TestSingleKeywordThreshold(t *testing.T) {
	pass := newTestMatcher(testItem{pos: "1", primary: []string{"inhalation", "sauerstoff"}})
	s := pass.scoreItem(&pass.items[0], words("Sauerstoff Flasche"))
	assert.Equal(t, model.Score{Ratio: 0.5, MaxLen: 10, Count: 1}, s)
	assert.NotNil(t, pass.FindBestMatch(de("Sauerstoff Flasche")))

	short := newTestMatcher(testItem{pos: "1", primary: []string{"atemhilfe", "vernebler"}})
	s = short.scoreItem(&short.items[0], words("Vernebler Set"))
	assert.Equal(t, model.Score{Ratio: 0.5, MaxLen: 9, Count: 1}, s)
	assert.Nil(t, short.FindBestMatch(de("Vernebler Set")))
}

func TestAccepts(t *testing.T) {
	m := NewMatcher(nil, nil, DefaultOptions())
	tests := []struct {
		s    model.Score
		want bool
	}{
		{model.Score{Ratio: 0.5, MaxLen: 10, Count: 1}, true},
		{model.Score{Ratio: 0.49, MaxLen: 10, Count: 1}, false},
		{model.Score{Ratio: 1, MaxLen: 9, Count: 1}, false},
		{model.Score{Ratio: 0.3, MaxLen: 6, Count: 2}, true},
		{model.Score{Ratio: 0.29, MaxLen: 6, Count: 2}, false},
		{model.Score{Ratio: 1, MaxLen: 5, Count: 3}, false},
		{model.Score{Ratio: 1, MaxLen: 20, Count: 0}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.accepts(tt.s), "%+v", tt.s)
	}
}

func TestLanguageSelection(t *testing.T) {
	m := newTestMatcher(testItem{pos: "1", primary: []string{"faltbar", "manuell", "rollstuhl"}})
	m.items[0].Primary[model.FR] = []string{"fauteuil", "roulant"}

	var q model.Query
	q.Desc[model.DE] = "Rollstuhl"
	q.Desc[model.FR] = "fauteuil roulant"

	var w [model.LanguageCount][]string
	w[model.DE] = SplitWords(Fold(q.Desc[model.DE]))
	w[model.FR] = SplitWords(Fold(q.Desc[model.FR]))
	s := m.scoreItem(&m.items[0], w)
	assert.Equal(t, model.Score{Ratio: 1, MaxLen: 8, Count: 2}, s)

	assert.NotNil(t, m.FindBestMatch(q))
}

func TestWinnerSelection(t *testing.T) {
	m := newTestMatcher(
		testItem{pos: "kinder", primary: []string{"kinder", "manuell", "rollstuhl"}},
		testItem{pos: "manuell", primary: []string{"manuell", "rollstuhl"}},
	)
	// higher ratio wins regardless of catalog order
	got := m.FindBestMatch(de("Rollstuhl manuell"))
	require.NotNil(t, got)
	assert.Equal(t, "manuell", got.PositionNr)

	m = newTestMatcher(
		testItem{pos: "short", primary: []string{"faltbar", "rollstuhl"}},
		testItem{pos: "long", primary: []string{"faltbar", "leichtgewicht"}},
	)
	// equal ratio: longer matched keyword wins
	got = m.FindBestMatch(de("Rollstuhl faltbar Leichtgewicht"))
	require.NotNil(t, got)
	assert.Equal(t, "long", got.PositionNr)

	m = newTestMatcher(
		testItem{pos: "first", primary: []string{"manuell", "rollstuhl"}},
		testItem{pos: "second", primary: []string{"manuell", "rollstuhl"}},
	)
	// full tie: lowest catalog id
	got = m.FindBestMatch(de("Rollstuhl manuell"))
	require.NotNil(t, got)
	assert.Equal(t, "first", got.PositionNr)
}

func TestBrandIsSearched(t *testing.T) {
	m := newTestMatcher(testItem{pos: "1", primary: []string{"leichtgewicht", "rollator"}})

	q := de("Leichtgewicht")
	q.Brand = "Rollator AG"
	assert.NotNil(t, m.FindBestMatch(q))
}

func TestFindBestMatchDeterministic(t *testing.T) {
	m := newTestMatcher(
		testItem{pos: "a", primary: []string{"manuell", "rollstuhl"}},
		testItem{pos: "b", primary: []string{"elektrisch", "rollstuhl"}},
		testItem{pos: "c", primary: []string{"rollstuhl"}},
	)
	q := de("Rollstuhl manuell elektrisch")
	first := m.FindBestMatch(q)
	require.NotNil(t, first)
	for range 20 {
		assert.Same(t, first, m.FindBestMatch(q))
	}
}

func TestFindBestMatchEmptyCatalog(t *testing.T) {
	m := NewMatcher(nil, nil, DefaultOptions())
	assert.Nil(t, m.FindBestMatch(de("Rollstuhl manuell")))
	assert.Nil(t, m.FindBestMatch(model.Query{}))
}
