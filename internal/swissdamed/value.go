package swissdamed

import (
	"encoding/json"
	"strconv"
	"strings"

	"swissdamed-migel/internal/utils"
)

// ValueToString renders a JSON value as one table cell.
func ValueToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return boolString(x)
	case json.Number:
		return numberString(x)
	case float64:
		return utils.FormatFloat(x)
	case string:
		return utils.Sanitize(strings.TrimSpace(x))
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := arrayElement(e); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	default:
		return utils.Sanitize(compactJSON(x))
	}
}

// arrayElement renders one element of an array value; localized objects
// become "LANG: text".
func arrayElement(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case map[string]any:
		text := localizedText(x)
		if text == "" {
			return "", false
		}
		return localizedLang(x) + ": " + text, true
	case string:
		t := utils.Sanitize(strings.TrimSpace(x))
		return t, t != ""
	case bool:
		return boolString(x), true
	case json.Number:
		return numberString(x), true
	case float64:
		return utils.FormatFloat(x), true
	default:
		d := utils.Sanitize(compactJSON(x))
		return d, d != ""
	}
}

// localizedText reads textValue, value or name: the first key present wins,
// even when it is not a string.
func localizedText(obj map[string]any) string {
	return utils.Sanitize(firstString(obj, "textValue", "value", "name"))
}

// localizedLang reads language or lang, "ANY" when absent.
func localizedLang(obj map[string]any) string {
	if l := firstString(obj, "language", "lang"); l != "" {
		return utils.Sanitize(l)
	}
	return AnyLanguage
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		s, _ := raw.(string)
		return strings.TrimSpace(s)
	}
	return ""
}

func boolString(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func numberString(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return utils.FormatFloat(f)
	}
	return n.String()
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
