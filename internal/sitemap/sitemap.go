// Package sitemap renders the sitemap.xml feed from the article collection.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/cry808/seorender/internal/content"
	"github.com/cry808/seorender/internal/slug"
)

// Lister is the slice of the content client the generator needs.
type Lister interface {
	ListArticles(ctx context.Context) ([]content.Article, error)
}

// staticPage is a hand-maintained top-level entry.
type staticPage struct {
	path       string
	changeFreq string
	priority   string
}

var staticPages = []staticPage{
	{path: "/", changeFreq: "daily", priority: "1.0"},
	{path: "/news", changeFreq: "daily", priority: "0.9"},
	{path: "/interviews", changeFreq: "weekly", priority: "0.8"},
	{path: "/about", changeFreq: "monthly", priority: "0.5"},
	{path: "/contact", changeFreq: "monthly", priority: "0.5"},
	{path: "/submit-music", changeFreq: "monthly", priority: "0.7"},
}

type urlSet struct {
	XMLName    xml.Name   `xml:"urlset"`
	Xmlns      string     `xml:"xmlns,attr"`
	XmlnsImage string     `xml:"xmlns:image,attr"`
	URLs       []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Image      *imageEntry `xml:"image:image,omitempty"`
}

type imageEntry struct {
	Loc   string `xml:"image:loc"`
	Title string `xml:"image:title,omitempty"`
}

// Generator builds the sitemap for a site origin. Slugs are recomputed from
// titles on every call rather than stored, so Generate is deterministic for
// a fixed catalog.
type Generator struct {
	origin string
	lister Lister
}

// New builds a Generator.
func New(origin string, lister Lister) *Generator {
	return &Generator{origin: strings.TrimRight(origin, "/"), lister: lister}
}

// Generate fetches the whole catalog in one unpaginated call (an accepted
// scale ceiling for a blog-sized archive) and renders the urlset. Static
// pages are always present, even for an empty catalog. Upstream failure is
// returned as-is; there is no partial or cached sitemap.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	articles, err := g.lister.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap fetch: %w", err)
	}

	set := urlSet{
		Xmlns:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XmlnsImage: "http://www.google.com/schemas/sitemap-image/1.1",
	}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        g.origin + p.path,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}
	for _, a := range articles {
		entry := urlEntry{
			Loc:        g.articleURL(a),
			LastMod:    a.LastModified(),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}
		if a.ImageURL != "" {
			entry.Image = &imageEntry{Loc: a.ImageURL, Title: a.Title}
		}
		set.URLs = append(set.URLs, entry)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close sitemap encoder: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (g *Generator) articleURL(a content.Article) string {
	s := slug.Slugify(a.Title)
	if s == "" {
		return fmt.Sprintf("%s/article/%d", g.origin, a.ID)
	}
	return fmt.Sprintf("%s/article/%d-%s", g.origin, a.ID, s)
}
