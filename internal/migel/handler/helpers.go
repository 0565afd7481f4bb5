package handler

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"swissdamed-migel/internal/migel/model"
	"swissdamed-migel/internal/migel/service"
)

// matchRequest accepts either pre-bucketed text (de/fr/it/brand) or the raw
// product fields, which are routed the same way as flattened export rows.
type matchRequest struct {
	DE    string `json:"de"`
	FR    string `json:"fr"`
	IT    string `json:"it"`
	Brand string `json:"brand"`

	TradeNames  map[string]string `json:"tradeNames"`
	DeviceName  string            `json:"deviceName"`
	ModelName   string            `json:"modelName"`
	CompanyName string            `json:"companyName"`
}

type matchResponse struct {
	Matched     bool     `json:"matched"`
	PositionNr  string   `json:"positionNr,omitempty"`
	Bezeichnung string   `json:"bezeichnung,omitempty"`
	Limitation  string   `json:"limitation,omitempty"`
	Category    []string `json:"category,omitempty"`
}

func (req matchRequest) query() model.Query {
	names := make(map[string]string, len(req.TradeNames))
	for l, v := range req.TradeNames {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" {
			l = "ANY"
		}
		names[l] = strings.TrimSpace(names[l] + " " + v)
	}
	langs := make([]string, 0, len(names))
	for l := range names {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	var headers, row []string
	for _, l := range langs {
		headers = append(headers, service.TradeNamePrefix+l)
		row = append(row, names[l])
	}
	headers = append(headers, "deviceName", "modelName", "companyName")
	row = append(row, req.DeviceName, req.ModelName, req.CompanyName)

	q := service.NewQueryBuilder(headers).Build(row)
	q.Desc[model.DE] = strings.TrimSpace(req.DE + " " + q.Desc[model.DE])
	q.Desc[model.FR] = strings.TrimSpace(req.FR + " " + q.Desc[model.FR])
	q.Desc[model.IT] = strings.TrimSpace(req.IT + " " + q.Desc[model.IT])
	q.Brand = strings.TrimSpace(q.Brand + " " + req.Brand)
	return q
}

func toResponse(it *model.CatalogItem) matchResponse {
	if it == nil {
		return matchResponse{}
	}
	return matchResponse{
		Matched:     true,
		PositionNr:  it.PositionNr,
		Bezeichnung: it.DisplayText,
		Limitation:  it.LimitationText,
		Category:    it.Category,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
