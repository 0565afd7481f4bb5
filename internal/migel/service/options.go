package service

import "swissdamed-migel/internal/migel/model"

// Options are the matcher's tuning knobs. The defaults reproduce the
// production behaviour; changing them moves recall/precision.
type Options struct {
	MinKeywordLen   int // primary and index keywords
	MinSecondaryLen int // secondary (bonus) keywords
	FuzzyMinLen     int // keywords this long may also match with their last char dropped
	SuffixMinExtra  int // compound host must be longer than the keyword by more than this

	MultiMinRatio   float64 // >= 2 matched keywords
	MultiMinMaxLen  int
	SingleMinRatio  float64 // exactly 1 matched keyword
	SingleMinMaxLen int

	StopWords []string
}

func DefaultOptions() Options {
	return Options{
		MinKeywordLen:   3,
		MinSecondaryLen: 8,
		FuzzyMinLen:     7,
		SuffixMinExtra:  2,
		MultiMinRatio:   0.3,
		MultiMinMaxLen:  6,
		SingleMinRatio:  0.5,
		SingleMinMaxLen: 10,
		StopWords:       DefaultStopWords(),
	}
}

// wordRules says how a language's keywords may match product words.
type wordRules struct {
	suffix bool // compound head: "katheter" in "verweilkatheter"
	fuzzy  bool // plural/case: "orthese" vs "orthesen"
}

// German gets both; FR/IT stay exact so "prothese" never hits "endoprothese".
var languageRules = [model.LanguageCount]wordRules{
	model.DE: {suffix: true, fuzzy: true},
	model.FR: {},
	model.IT: {},
}
