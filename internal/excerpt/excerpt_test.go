package excerpt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestSummarize_StripsMarkdownMarkers(t *testing.T) {
	t.Parallel()

	in := "# Big News\n\nDrake released *a new album* with `beats` and [a link](https://x.com) > quote"
	out := Summarize(in, 500)
	require.NotContains(t, out, "#")
	require.NotContains(t, out, "*")
	require.NotContains(t, out, "`")
	require.NotContains(t, out, "[")
	require.NotContains(t, out, "]")
	require.NotContains(t, out, ">")
	// Lossy by contract: the link target survives as plain text.
	require.Contains(t, out, "https://x.com")
	require.Contains(t, out, "Big News")
}

func TestSummarize_CollapsesNewlines(t *testing.T) {
	t.Parallel()

	out := Summarize("line one\n\n\nline two\nline three", 500)
	require.Equal(t, "line one line two line three", out)
}

func TestSummarize_TruncatesWithEllipsis(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 400)
	out := Summarize(long, 160)
	require.Equal(t, 163, len(out))
	require.True(t, strings.HasSuffix(out, "..."))
}

func TestSummarize_NoEllipsisWhenShort(t *testing.T) {
	t.Parallel()

	out := Summarize("short text", 160)
	require.Equal(t, "short text", out)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Summarize("", 160))
}

func TestSummarize_LengthBoundHolds(t *testing.T) {
	t.Parallel()

	inputs := []string{
		strings.Repeat("word ", 100),
		"# " + strings.Repeat("héading ", 60),
		strings.Repeat("x", 161),
	}
	for _, in := range inputs {
		out := Summarize(in, 160)
		require.LessOrEqual(t, utf8.RuneCountInString(out), 163, "input %q", in)
	}
}

func TestSummarize_UnicodeSafeTruncation(t *testing.T) {
	t.Parallel()

	out := Summarize(strings.Repeat("é", 300), 160)
	require.True(t, utf8.ValidString(out))
	require.Equal(t, 163, utf8.RuneCountInString(out))
}
