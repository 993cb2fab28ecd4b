// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageNames lists the content templates, each paired with the shared
// layout at parse time.
var pageNames = []string{"home", "detail", "login", "register", "recommend"}

// Pages renders the HTML frontend. Initial page data is fetched
// server-side; interactive parts (login, recommendations) call the JSON
// API from inline scripts.
type Pages struct {
	db        *database.DB
	config    *config.Config
	templates map[string]*template.Template
	static    http.Handler
}

// NewPages parses the embedded templates and returns the page handlers.
func NewPages(db *database.DB, cfg *config.Config) (*Pages, error) {
	funcs := pageFuncs()

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html.tmpl").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html.tmpl",
			"templates/"+name+".html.tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}

	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	return &Pages{
		db:        db,
		config:    cfg,
		templates: templates,
		static:    http.StripPrefix("/static/", staticCache(http.FileServer(http.FS(staticRoot)))),
	}, nil
}

// pageFuncs builds the template function map shared by all pages.
func pageFuncs() template.FuncMap {
	return template.FuncMap{
		// price renders a catalog price with the pound prefix used
		// throughout the source site.
		"price": func(v float64) string {
			return fmt.Sprintf("£%.2f", v)
		},

		// stars renders a 0-5 rating as filled and empty stars.
		"stars": func(rating int) string {
			if rating < 0 {
				rating = 0
			}
			if rating > 5 {
				rating = 5
			}
			return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		},

		// truncate shortens long descriptions for shelf cards.
		"truncate": func(s string, max int) string {
			if max <= 0 {
				return s
			}
			runes := []rune(s)
			if len(runes) <= max {
				return s
			}
			trimmed := strings.TrimRight(string(runes[:max]), " ")
			return trimmed + "..."
		},

		// add supports pagination links.
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// pageData carries fields every page needs.
type pageData struct {
	Title  string
	Active string
}

// homeData feeds the home template: either search results or the two
// discovery shelves.
type homeData struct {
	pageData
	Query    string
	Results  *models.BookPage
	Random   []models.Book
	TopRated []models.Book
}

// detailData feeds the book detail template.
type detailData struct {
	pageData
	Book *models.Book
}

// loginData feeds the sign-in template. SSOEnabled shows the identity
// provider link when the OIDC flow is configured.
type loginData struct {
	pageData
	SSOEnabled bool
}

// shelfSize is how many books each discovery shelf shows.
const shelfSize = 8

// Home renders the landing page: a search box, random picks, and the
// top-rated shelf. With a q parameter it renders paginated search results
// instead of the shelves.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := homeData{
		pageData: pageData{Title: "Home", Active: "home"},
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
	}

	if p.db == nil {
		p.render(w, r, "home", data)
		return
	}

	if data.Query != "" {
		page := 1
		if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
			page = v
		}
		results, err := p.db.ListBooks(ctx, database.ListBooksParams{
			Query:    data.Query,
			Page:     page,
			PageSize: p.pageSize(),
		})
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("search query failed")
		} else {
			data.Results = results
		}
		p.render(w, r, "home", data)
		return
	}

	random, err := p.db.RandomBooks(ctx, shelfSize)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("random shelf query failed")
	} else {
		data.Random = random
	}

	topRated, err := p.db.TopRatedBooks(ctx, shelfSize)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("top-rated shelf query failed")
	} else {
		data.TopRated = topRated
	}

	p.render(w, r, "home", data)
}

// BookDetail renders one book. Unknown IDs get a plain 404.
func (p *Pages) BookDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		http.NotFound(w, r)
		return
	}

	if p.db == nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	book, err := p.db.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int64("book_id", id).Msg("book lookup failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.render(w, r, "detail", detailData{
		pageData: pageData{Title: book.Title, Active: ""},
		Book:     book,
	})
}

// Login renders the login form. Submission happens client-side against
// the JSON API so the token lands in browser storage.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "login", loginData{
		pageData:   pageData{Title: "Sign in", Active: "login"},
		SSOEnabled: p.config != nil && p.config.Security.OIDC.Enabled,
	})
}

// Register renders the registration form.
func (p *Pages) Register(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "register", pageData{Title: "Register", Active: "register"})
}

// Recommend renders the free-text recommendation form. Results come from
// the JSON API via the inline script.
func (p *Pages) Recommend(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "recommend", pageData{Title: "Recommendations", Active: "recommend"})
}

// Static serves the embedded CSS and JS assets.
func (p *Pages) Static() http.Handler {
	return p.static
}

// pageSize returns the search page size, following the API default.
func (p *Pages) pageSize() int {
	if p.config != nil && p.config.API.DefaultPageSize > 0 {
		return p.config.API.DefaultPageSize
	}
	return 20
}

// render executes a page template into a buffer first so a mid-render
// failure produces a clean 500 instead of a half-written page.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	tmpl, ok := p.templates[name]
	if !ok {
		logging.Error().Str("template", name).Msg("unknown page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("template execution failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("page write failed")
	}
}

// staticCache sets long-lived cache headers on the embedded assets.
func staticCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		next.ServeHTTP(w, r)
	})
}
