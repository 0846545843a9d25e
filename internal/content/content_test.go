package content_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/content"
)

func TestLoadRendersReturnsPolicy(t *testing.T) {
	t.Parallel()

	page, err := content.Load("returns-policy")
	require.NoError(t, err)
	require.Equal(t, "returns-policy", page.Slug)
	require.Equal(t, "Returns policy", page.Title)
	require.NotEmpty(t, page.Summary)
	require.Equal(t, time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	require.Contains(t, string(page.HTML), "<h2")
	require.Contains(t, string(page.HTML), "<strong>14 days</strong>")
}

func TestLoadRendersGFMTables(t *testing.T) {
	t.Parallel()

	page, err := content.Load("delivery")
	require.NoError(t, err)
	require.Contains(t, string(page.HTML), "<table>")
}

func TestLoadNormalizesSlug(t *testing.T) {
	t.Parallel()

	page, err := content.Load("  RETURNS-POLICY ")
	require.NoError(t, err)
	require.Equal(t, "returns-policy", page.Slug)
}

func TestLoadUnknownSlug(t *testing.T) {
	t.Parallel()

	for _, slug := range []string{"", "no-such-page", "../go.mod"} {
		_, err := content.Load(slug)
		require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound), slug)
	}
}

func TestSanitizerStripsScript(t *testing.T) {
	t.Parallel()

	page, err := content.Load("returns-policy")
	require.NoError(t, err)
	require.False(t, strings.Contains(string(page.HTML), "<script"))
}
