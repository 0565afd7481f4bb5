package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Transliteration table: umlauts to digraphs, French/Italian accents to the
// bare vowel. Runs before lower-casing so that ALL-CAPS text
// (ABSAUGGERAETE / ABSAUGGERÄTE) ends up like proper text (Absauggeräte).
var translit = map[rune]string{
	'ä': "ae", 'ö': "oe", 'ü': "ue", 'ß': "ss",
	'Ä': "Ae", 'Ö': "Oe", 'Ü': "Ue",
	'é': "e", 'è': "e", 'ê': "e",
	'à': "a", 'â': "a",
	'ù': "u", 'û': "u",
	'ô': "o", 'î': "i", 'ç': "c",
}

// Normalize composes the text (NFC, so a+U+0308 is seen as ä) and replaces
// the table characters until nothing changes. Case is left alone.
func Normalize(s string) string {
	for {
		next := transliterate(norm.NFC.String(s))
		if next == s {
			return next
		}
		s = next
	}
}

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if rep, ok := translit[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fold is Normalize followed by lower-casing: the form every comparison uses.
func Fold(s string) string {
	return strings.ToLower(Normalize(s))
}

// SplitWords splits on every non letter/digit rune and drops empty tokens.
// Order and duplicates are kept.
func SplitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// runeLen is the character length used for all weights and thresholds.
func runeLen(s string) int { return utf8.RuneCountInString(s) }

// dropLast cuts the last character.
func dropLast(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
