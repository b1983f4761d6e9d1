// Package botdetect classifies requests as social/search crawlers or humans.
package botdetect

import "strings"

// Vocabulary is the User-Agent substring list that marks a crawler. It is
// matched case-insensitively and updated by redeploy, not at runtime.
var Vocabulary = []string{
	"bot",
	"crawler",
	"spider",
	"crawling",
	"facebook",
	"twitter",
	"slack",
	"telegram",
	"whatsapp",
	"linkedin",
	"facebookexternalhit",
	"twitterbot",
	"slackbot",
}

// Classifier decides whether a User-Agent belongs to a crawler.
type Classifier struct {
	markers []string
}

// NewClassifier builds a Classifier over the given markers, falling back to
// the package Vocabulary when none are supplied.
func NewClassifier(markers ...string) *Classifier {
	if len(markers) == 0 {
		markers = Vocabulary
	}
	lowered := make([]string, len(markers))
	for i, m := range markers {
		lowered[i] = strings.ToLower(m)
	}
	return &Classifier{markers: lowered}
}

// IsCrawler reports whether the User-Agent matches any marker. An empty
// User-Agent classifies as human so the interactive app is served by default.
func (c *Classifier) IsCrawler(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, m := range c.markers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}
