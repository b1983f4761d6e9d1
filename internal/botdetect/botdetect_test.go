package botdetect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifier_IsCrawler_KnownCrawlers(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	agents := []string{
		"facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
		"Twitterbot/1.0",
		"Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)",
		"TelegramBot (like TwitterBot)",
		"WhatsApp/2.19.81 A",
		"LinkedInBot/1.0",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"SOMETHING-Spider",
		"generic CRAWLER agent",
	}
	for _, ua := range agents {
		require.True(t, c.IsCrawler(ua), "expected crawler: %q", ua)
	}
}

func TestClassifier_IsCrawler_CaseInsensitive(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	require.True(t, c.IsCrawler("FACEBOOKEXTERNALHIT/1.1"))
	require.True(t, c.IsCrawler("tWiTtErBoT"))
}

func TestClassifier_IsCrawler_Humans(t *testing.T) {
	t.Parallel()

	c := NewClassifier()
	require.False(t, c.IsCrawler(""))
	require.False(t, c.IsCrawler("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"))
	require.False(t, c.IsCrawler("curl/8.4.0"))
}

func TestNewClassifier_CustomMarkers(t *testing.T) {
	t.Parallel()

	c := NewClassifier("Preview")
	require.True(t, c.IsCrawler("some-preview-agent/1.0"))
	require.False(t, c.IsCrawler("Twitterbot/1.0"))
}
