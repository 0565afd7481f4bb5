package service

import (
	"strings"

	"swissdamed-migel/internal/migel/model"
)

// Matcher picks at most one catalog item per product. It holds only
// read-only data and is safe for concurrent use.
type Matcher struct {
	items []model.CatalogItem
	idx   *Index
	opt   Options
}

func NewMatcher(items []model.CatalogItem, idx *Index, opt Options) *Matcher {
	if idx == nil {
		idx = BuildIndex(items)
	}
	return &Matcher{items: items, idx: idx, opt: opt}
}

func (m *Matcher) Items() []model.CatalogItem { return m.items }
func (m *Matcher) Index() *Index              { return m.idx }

// FindBestMatch returns the winning item or nil. "No match" is the normal
// outcome for most products.
//
// Candidates come from a broad substring scan of all buckets together;
// scoring is word-level and strictly per language, so a French keyword is
// never tested against German text.
func (m *Matcher) FindBestMatch(q model.Query) *model.CatalogItem {
	var (
		folded [model.LanguageCount]string
		words  [model.LanguageCount][]string
	)
	for _, lang := range model.Languages {
		folded[lang] = Fold(q.Desc[lang] + " " + q.Brand)
		words[lang] = SplitWords(folded[lang])
	}
	combined := strings.Join(folded[:], " ")

	best := -1
	var bestScore model.Score
	for _, id := range m.idx.candidates(combined, m.opt.FuzzyMinLen) {
		s := m.scoreItem(&m.items[id], words)
		if !m.accepts(s) {
			continue
		}
		if best < 0 || s.Ratio > bestScore.Ratio ||
			(s.Ratio == bestScore.Ratio && s.MaxLen > bestScore.MaxLen) {
			best, bestScore = id, s
		}
	}
	if best < 0 {
		return nil
	}
	return &m.items[best]
}

// scoreItem scores every language and keeps the one with the highest primary
// ratio (first wins on ties, in DE, FR, IT order).
func (m *Matcher) scoreItem(item *model.CatalogItem, words [model.LanguageCount][]string) model.Score {
	var best model.Score
	for i, lang := range model.Languages {
		s := m.scoreLanguage(item, lang, words[lang])
		if i == 0 || s.Ratio > best.Ratio {
			best = s
		}
	}
	return best
}

// scoreLanguage: secondary keywords only count once a primary keyword hit,
// so a stray long word from a later description line cannot match alone.
func (m *Matcher) scoreLanguage(item *model.CatalogItem, lang model.Language, words []string) model.Score {
	rules := languageRules[lang]
	s := m.keywordScore(words, item.Primary[lang], rules)
	if s.Count == 0 {
		return s
	}
	sec := m.keywordScore(words, item.Secondary[lang], rules)
	s.Count += sec.Count
	if sec.MaxLen > s.MaxLen {
		s.MaxLen = sec.MaxLen
	}
	return s
}

// keywordScore: ratio = matched keyword characters / all keyword characters.
func (m *Matcher) keywordScore(words, keywords []string, rules wordRules) model.Score {
	total := 0
	for _, kw := range keywords {
		total += runeLen(kw)
	}
	if total == 0 {
		return model.Score{}
	}
	var s model.Score
	matched := 0
	for _, kw := range keywords {
		if !m.wordMatch(words, kw, rules) {
			continue
		}
		n := runeLen(kw)
		matched += n
		s.Count++
		if n > s.MaxLen {
			s.MaxLen = n
		}
	}
	s.Ratio = float64(matched) / float64(total)
	return s
}

// wordMatch: exact token, or (suffix) the token ends with kw and is more than
// SuffixMinExtra characters longer; with fuzzy, both again for kw minus its
// last character when kw is at least FuzzyMinLen long.
func (m *Matcher) wordMatch(words []string, kw string, rules wordRules) bool {
	if m.matchWord(words, kw, rules.suffix) {
		return true
	}
	if rules.fuzzy && runeLen(kw) >= m.opt.FuzzyMinLen {
		return m.matchWord(words, dropLast(kw), rules.suffix)
	}
	return false
}

func (m *Matcher) matchWord(words []string, kw string, suffix bool) bool {
	n := runeLen(kw)
	for _, w := range words {
		if w == kw {
			return true
		}
		if suffix && runeLen(w) > n+m.opt.SuffixMinExtra && strings.HasSuffix(w, kw) {
			return true
		}
	}
	return false
}

func (m *Matcher) accepts(s model.Score) bool {
	switch {
	case s.Count >= 2:
		return s.Ratio >= m.opt.MultiMinRatio && s.MaxLen >= m.opt.MultiMinMaxLen
	case s.Count == 1:
		return s.Ratio >= m.opt.SingleMinRatio && s.MaxLen >= m.opt.SingleMinMaxLen
	default:
		return false
	}
}

// fuzzyContains is the candidate pre-filter: plain substring, or for long
// keywords the keyword minus its last character.
func fuzzyContains(haystack, kw string, fuzzyMinLen int) bool {
	if strings.Contains(haystack, kw) {
		return true
	}
	return runeLen(kw) >= fuzzyMinLen && strings.Contains(haystack, dropLast(kw))
}
