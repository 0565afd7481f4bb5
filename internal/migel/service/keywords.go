package service

import (
	"sort"
	"strings"
)

// Extractor turns catalog text into keyword sets.
type Extractor struct {
	opt  Options
	stop map[string]struct{}
}

func NewExtractor(opt Options) *Extractor {
	stop := make(map[string]struct{}, len(opt.StopWords))
	for _, w := range opt.StopWords {
		if w = Fold(strings.TrimSpace(w)); w != "" {
			stop[w] = struct{}{}
		}
	}
	return &Extractor{opt: opt, stop: stop}
}

// Keywords folds text, keeps words of at least minLen characters that are
// not stop words, and returns them sorted and deduplicated.
func (e *Extractor) Keywords(text string, minLen int) []string {
	words := SplitWords(Fold(text))
	if len(words) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if runeLen(w) < minLen {
			continue
		}
		if _, ok := e.stop[w]; ok {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// FirstLine: primary keywords.
func (e *Extractor) FirstLine(text string) []string {
	return e.Keywords(firstLine(text), e.opt.MinKeywordLen)
}

// FullText: index keywords.
func (e *Extractor) FullText(text string) []string {
	return e.Keywords(text, e.opt.MinKeywordLen)
}

// Secondary: long keywords from every line but the first.
func (e *Extractor) Secondary(text string) []string {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}
	rest := strings.Join(lines[1:], " ")
	if strings.TrimSpace(rest) == "" {
		return nil
	}
	return e.Keywords(rest, e.opt.MinSecondaryLen)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}

// mergeKeywords unions sorted sets into a new sorted, deduplicated set.
func mergeKeywords(sets ...[]string) []string {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	if n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	sort.Strings(out)
	j := 0
	for i := range out {
		if i == 0 || out[i] != out[j-1] {
			out[j] = out[i]
			j++
		}
	}
	return out[:j]
}
