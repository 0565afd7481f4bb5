package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"swissdamed-migel/internal/fileio"
	"swissdamed-migel/internal/middleware"
	"swissdamed-migel/internal/migel/service"
)

// Catalog reports the size of the loaded catalog.
func Catalog(m *service.Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, map[string]int{
			"items":    len(m.Items()),
			"keywords": m.Index().Len(),
		})
	}
}

// Match scores one product given as JSON.
func Match(m *service.Matcher, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		var req matchRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}

		res := toResponse(m.FindBestMatch(req.query()))
		if err := writeJSON(w, http.StatusOK, res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		log.Debug().Bool("matched", res.Matched).Str("position", res.PositionNr).Msg("match")
	}
}

type fileResponse struct {
	Rows    int        `json:"rows"`
	Matched int        `json:"matched"`
	Headers []string   `json:"headers"`
	Data    [][]string `json:"data"`
}

// MatchFile matches every row of an uploaded product table (multipart field
// "file", optional "header_row", 1-based) and returns the matched rows with
// the migel columns appended.
func MatchFile(m *service.Matcher, workers int, maxMemory int64, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		if err := r.ParseMultipartForm(maxMemory); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
			return
		}
		defer file.Close()

		table, err := fileio.ReadTable(file, header.Filename, atoi(r.FormValue("header_row"), 1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read file: "+err.Error())
			return
		}

		qb := service.NewQueryBuilder(table.Headers)
		matches, err := service.MatchRows(r.Context(), m, qb, table.Rows, workers)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		data := service.AppendMatched(table.Rows, matches)

		res := fileResponse{
			Rows:    len(table.Rows),
			Matched: len(data),
			Headers: append(append([]string{}, table.Headers...), service.MatchColumns...),
			Data:    data,
		}
		if res.Data == nil {
			res.Data = [][]string{}
		}
		if err := writeJSON(w, http.StatusOK, res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		log.Info().
			Str("file", header.Filename).
			Int("rows", res.Rows).
			Int("matched", res.Matched).
			Dur("elapsed", time.Since(start)).
			Msg("match file done")
	}
}
