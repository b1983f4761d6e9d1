package slug

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseID_PlainID(t *testing.T) {
	t.Parallel()

	id, err := ParseID("123")
	require.NoError(t, err)
	require.Equal(t, int64(123), id)
}

func TestParseID_HyphenSlug(t *testing.T) {
	t.Parallel()

	id, err := ParseID("123-some-title-with-many-hyphens")
	require.NoError(t, err)
	require.Equal(t, int64(123), id)
}

func TestParseID_SlashSlug(t *testing.T) {
	t.Parallel()

	id, err := ParseID("123/some-title")
	require.NoError(t, err)
	require.Equal(t, int64(123), id)
}

func TestParseID_SlashWinsOverHyphen(t *testing.T) {
	t.Parallel()

	// The slash is the primary separator; the hyphen belongs to the slug.
	id, err := ParseID("42/drake-drops-new-album")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestParseID_NonNumericLeadingToken(t *testing.T) {
	t.Parallel()

	_, err := ParseID("abc-article")
	require.ErrorIs(t, err, ErrBadIdentifier)
}

func TestParseID_Empty(t *testing.T) {
	t.Parallel()

	_, err := ParseID("")
	require.ErrorIs(t, err, ErrBadIdentifier)
}

func TestParseID_ZeroAndNegative(t *testing.T) {
	t.Parallel()

	_, err := ParseID("0-nothing")
	require.ErrorIs(t, err, ErrBadIdentifier)

	// "-5-x" splits on the first hyphen, leaving an empty token.
	_, err = ParseID("-5-x")
	require.ErrorIs(t, err, ErrBadIdentifier)
}

func TestSlugify_Basic(t *testing.T) {
	t.Parallel()

	require.Equal(t, "drake-drops-new-album", Slugify("Drake Drops New Album"))
}

func TestSlugify_StripsPunctuationAndCollapses(t *testing.T) {
	t.Parallel()

	require.Equal(t, "whats-next-for-uk-drill", Slugify("  What's   Next -- for UK Drill?! "))
}

func TestSlugify_EmptyAndSymbolOnly(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Slugify(""))
	require.Equal(t, "", Slugify("!!! ???"))
}

func TestSlugify_Deterministic(t *testing.T) {
	t.Parallel()

	title := "Top 10 Tracks of 2024 (so far)"
	require.Equal(t, Slugify(title), Slugify(title))
}

func TestParseID_RoundTripWithSlugify(t *testing.T) {
	t.Parallel()

	titles := []string{
		"Drake Drops New Album",
		"A!@#$%^&*() strange   title",
		"",
		"-leading and trailing-",
	}
	for _, title := range titles {
		for _, id := range []int64{1, 42, 99999} {
			segment := fmt.Sprintf("%d-%s", id, Slugify(title))
			got, err := ParseID(segment)
			require.NoError(t, err, "segment %q", segment)
			require.Equal(t, id, got, "segment %q", segment)
		}
	}
}
