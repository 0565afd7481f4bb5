package swissdamed

import (
	"sort"

	"swissdamed-migel/internal/fileio"
)

const (
	AnyLanguage = "ANY"
	KeyUDIDIs   = "udiDis"
	KeyUDIDI    = "udiDiCode"
	KeyTrade    = "tradeNames"
	TradePrefix = "tradeName_"
)

// Flatten turns basic-UDI objects into one row per UDI-DI. Columns are the
// top-level keys (except udiDis) in first-seen order, then udiDiCode, then
// one tradeName_<LANG> column per language found. Non-object values are skipped.
func Flatten(values []any) *fileio.Table {
	base := collectKeys(values)
	langs := TradeNameLanguages(values)

	headers := make([]string, 0, len(base)+1+len(langs))
	headers = append(headers, base...)
	headers = append(headers, KeyUDIDI)
	for _, l := range langs {
		headers = append(headers, TradePrefix+l)
	}

	var rows [][]string
	for _, v := range values {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		fields := make([]string, len(base))
		for i, k := range base {
			fields[i] = ValueToString(obj[k])
		}

		for _, udi := range udiEntries(obj) {
			names := tradeNamesByLang(udi)
			row := make([]string, 0, len(headers))
			row = append(row, fields...)
			row = append(row, ValueToString(udi[KeyUDIDI]))
			for _, l := range langs {
				row = append(row, names[l])
			}
			rows = append(rows, row)
		}
	}
	return &fileio.Table{Headers: headers, Rows: rows}
}

// collectKeys: keys of each object sorted, objects in input order, first
// occurrence wins.
func collectKeys(values []any) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for _, k := range sortedKeys(obj) {
			if k == KeyUDIDIs {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// TradeNameLanguages lists every trade name language in sorted order.
func TradeNameLanguages(values []any) []string {
	set := make(map[string]struct{})
	for _, v := range values {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for _, udi := range asObjects(obj[KeyUDIDIs]) {
			for _, tn := range asObjects(udi[KeyTrade]) {
				set[tradeLang(tn)] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// udiEntries returns the udiDis objects, or one empty entry so the basic
// UDI still yields a row.
func udiEntries(obj map[string]any) []map[string]any {
	arr, ok := obj[KeyUDIDIs].([]any)
	if !ok {
		return []map[string]any{{}}
	}
	out := make([]map[string]any, 0, len(arr))
	for _, e := range arr {
		m, _ := e.(map[string]any)
		out = append(out, m) // nil for non-objects: empty code, no names
	}
	return out
}

// tradeNamesByLang joins several names of one language with " | ".
func tradeNamesByLang(udi map[string]any) map[string]string {
	out := make(map[string]string)
	for _, tn := range asObjects(udi[KeyTrade]) {
		text := localizedText(tn)
		if text == "" {
			continue
		}
		l := tradeLang(tn)
		if prev, ok := out[l]; ok {
			out[l] = prev + " | " + text
		} else {
			out[l] = text
		}
	}
	return out
}

func tradeLang(tn map[string]any) string {
	if l := firstString(tn, "language", "lang"); l != "" {
		return l
	}
	return AnyLanguage
}

func asObjects(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
