// Package render synthesizes self-contained HTML documents carrying the
// Open Graph, Twitter Card and JSON-LD metadata crawlers read. Humans never
// see these pages; both the meta refresh and the script redirect send any
// JS-capable visitor to the canonical article URL.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/cry808/seorender/internal/content"
	"github.com/cry808/seorender/internal/excerpt"
	"github.com/cry808/seorender/internal/imgproxy"
)

// RouteStyle selects how the article route encodes its identifier.
type RouteStyle string

const (
	// IDRoute is the "<id>" or "<id>/<slug>" path shape.
	IDRoute RouteStyle = "id"
	// SlugRoute is the "<id>-<slug>" path shape. It carries the rich
	// metadata variant: JSON-LD block plus image-proxy normalization.
	SlugRoute RouteStyle = "slug"
)

// Rich reports whether the style includes JSON-LD and the image proxy.
func (s RouteStyle) Rich() bool { return s == SlugRoute }

// DescriptionLength is the excerpt budget for meta descriptions.
const DescriptionLength = 160

// Site identifies the publication the metadata describes.
type Site struct {
	// Origin is the canonical public origin, e.g. https://cry808.com.
	Origin string
	// Name appears in <title> and og:site_name.
	Name string
	// LogoURL feeds the JSON-LD publisher Organization.
	LogoURL string
}

type pageData struct {
	Title         string
	SiteName      string
	Description   string
	CanonicalURL  string
	ImageURL      string
	PublishedTime string
	Author        string
	Tags          []string
	JSONLD        template.JS
}

var pageTemplate = template.Must(template.New("crawler-page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} | {{.SiteName}}</title>
<meta name="description" content="{{.Description}}">
<link rel="canonical" href="{{.CanonicalURL}}">
<meta property="og:type" content="article">
<meta property="og:url" content="{{.CanonicalURL}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:site_name" content="{{.SiteName}}">
{{- if .ImageURL}}
<meta property="og:image" content="{{.ImageURL}}">
{{- end}}
{{- if .PublishedTime}}
<meta property="article:published_time" content="{{.PublishedTime}}">
{{- end}}
{{- if .Author}}
<meta property="article:author" content="{{.Author}}">
{{- end}}
{{- range .Tags}}
<meta property="article:tag" content="{{.}}">
{{- end}}
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
{{- if .ImageURL}}
<meta name="twitter:image" content="{{.ImageURL}}">
{{- end}}
{{- if .JSONLD}}
<script type="application/ld+json">{{.JSONLD}}</script>
{{- end}}
<meta http-equiv="refresh" content="0;url={{.CanonicalURL}}">
<script>window.location.replace({{.CanonicalURL}});</script>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Description}}</p>
<p><a href="{{.CanonicalURL}}">Continue reading on {{.SiteName}}</a></p>
</body>
</html>
`))

type ldPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ldOrganization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Logo ldImg  `json:"logo"`
}

type ldImg struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type ldMainEntity struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type ldNewsArticle struct {
	Context          string         `json:"@context"`
	Type             string         `json:"@type"`
	Headline         string         `json:"headline"`
	Description      string         `json:"description"`
	Image            []string       `json:"image,omitempty"`
	DatePublished    string         `json:"datePublished,omitempty"`
	DateModified     string         `json:"dateModified,omitempty"`
	Author           ldPerson       `json:"author"`
	Publisher        ldOrganization `json:"publisher"`
	MainEntityOfPage ldMainEntity   `json:"mainEntityOfPage"`
	Keywords         string         `json:"keywords,omitempty"`
}

// ArticlePage renders the crawler-facing document for an article. The
// canonical URL is the site origin plus the original request path, so the
// redirect lands on the exact URL the crawler asked about. Image and tag
// metadata are omitted entirely when the article lacks them.
func ArticlePage(a *content.Article, requestPath string, site Site, style RouteStyle) ([]byte, error) {
	canonical := strings.TrimRight(site.Origin, "/") + requestPath

	data := pageData{
		Title:         a.Title,
		SiteName:      site.Name,
		Description:   excerpt.Summarize(a.Content, DescriptionLength),
		CanonicalURL:  canonical,
		PublishedTime: a.CreatedAt,
		Author:        a.Author,
		Tags:          a.Tags,
	}

	if a.ImageURL != "" {
		if style.Rich() {
			data.ImageURL = imgproxy.BuildURL(a.ImageURL)
		} else {
			data.ImageURL = a.ImageURL
		}
	}

	if style.Rich() {
		ld, err := newsArticleLD(a, data, site)
		if err != nil {
			return nil, err
		}
		data.JSONLD = template.JS(ld) //nolint:gosec // marshalled by encoding/json above
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render article page: %w", err)
	}
	return buf.Bytes(), nil
}

func newsArticleLD(a *content.Article, data pageData, site Site) (string, error) {
	ld := ldNewsArticle{
		Context:       "https://schema.org",
		Type:          "NewsArticle",
		Headline:      a.Title,
		Description:   data.Description,
		DatePublished: a.CreatedAt,
		DateModified:  a.LastModified(),
		Author:        ldPerson{Type: "Person", Name: a.Author},
		Publisher: ldOrganization{
			Type: "Organization",
			Name: site.Name,
			Logo: ldImg{Type: "ImageObject", URL: site.LogoURL},
		},
		MainEntityOfPage: ldMainEntity{Type: "WebPage", ID: data.CanonicalURL},
	}
	if data.ImageURL != "" {
		ld.Image = []string{data.ImageURL}
	}
	if len(a.Tags) > 0 {
		ld.Keywords = strings.Join(a.Tags, ", ")
	}
	out, err := json.Marshal(ld)
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(out), nil
}
