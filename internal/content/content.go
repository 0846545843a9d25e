// Package content serves the storefront's informational pages (returns
// policy, delivery information) from embedded markdown documents with YAML
// front matter. Rendered HTML is sanitized before it reaches the browser.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
)

//go:embed pages/*.md
var pagesFS embed.FS

// Page is a rendered content page.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	UpdatedAt time.Time
	HTML      template.HTML
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()

	mu    sync.RWMutex
	cache = map[string]Page{}
)

// Load renders the page for slug, caching the result for the process
// lifetime; the source documents are embedded and immutable.
func Load(slug string) (Page, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return Page{}, apperrors.New(apperrors.CodeNotFound, "page not found")
	}

	mu.RLock()
	if page, ok := cache[slug]; ok {
		mu.RUnlock()
		return page, nil
	}
	mu.RUnlock()

	raw, err := pagesFS.ReadFile("pages/" + slug + ".md")
	if err != nil {
		return Page{}, apperrors.New(apperrors.CodeNotFound, "page not found")
	}

	fm, body := splitFrontMatter(string(raw))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", slug, err)
		}
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", slug, err)
	}

	page := Page{
		Slug:      slug,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		UpdatedAt: parseDate(front.UpdatedAt),
		HTML:      template.HTML(policy.SanitizeBytes(buf.Bytes())),
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}

	mu.Lock()
	cache[slug] = page
	mu.Unlock()
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
