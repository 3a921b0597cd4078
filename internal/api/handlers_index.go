// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/omdb"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

// plotFallback replaces a missing plot on the page.
const plotFallback = "Plot details not found."

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// cardView is a card as rendered on the page.
type cardView struct {
	Title     string
	Poster    string
	HasPoster bool
	Rating    string
	HasRating bool
	Plot      string
}

// indexPage is the data passed to the index template.
type indexPage struct {
	Titles   []string
	Query    string
	Count    int
	MinCount int
	MaxCount int
	Columns  int
	Notice   string
	Cards    []cardView
}

// Index handles GET /. With a title query parameter it renders the
// recommendation grid; without one it renders the prompt.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Titles:   h.recommender.Titles(),
		Query:    strings.TrimSpace(r.URL.Query().Get("title")),
		Count:    clamp(getIntParam(r, "count", h.bounds.DefaultCount), h.bounds.MinCount, h.bounds.MaxCount),
		MinCount: h.bounds.MinCount,
		MaxCount: h.bounds.MaxCount,
		Columns:  h.bounds.GridColumns,
	}

	if page.Query != "" {
		recs, err := h.recommender.Similar(r.Context(), page.Query, page.Count)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Str("title", sanitizeLogValue(page.Query)).Msg("Recommendation lookup failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if len(recs) == 0 {
			page.Notice = noMatchesNotice(page.Query)
		} else {
			page.Notice = foundNotice(len(recs))
			for _, c := range h.buildCards(r.Context(), recs) {
				d := omdb.Details{Plot: c.Plot, Poster: c.Poster, Rating: c.Rating}
				v := cardView{
					Title:     c.Title,
					Poster:    c.Poster,
					HasPoster: d.HasPoster(),
					Rating:    c.Rating,
					HasRating: d.HasRating(),
					Plot:      c.Plot,
				}
				if !d.HasPlot() {
					v.Plot = plotFallback
				}
				page.Cards = append(page.Cards, v)
			}
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to execute index template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write index page")
	}
}
