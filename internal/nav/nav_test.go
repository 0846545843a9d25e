package nav_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/nav"
)

func hrefs(items []nav.RenderedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Href)
	}
	return out
}

func TestBuildHidesAuthOnlyEntries(t *testing.T) {
	t.Parallel()

	anon := nav.Build("/shop", false)
	require.NotContains(t, hrefs(anon), "/orders")
	require.NotContains(t, hrefs(anon), "/returns")

	signed := nav.Build("/shop", true)
	require.Contains(t, hrefs(signed), "/orders")
	require.Contains(t, hrefs(signed), "/returns")
}

func TestBuildActiveState(t *testing.T) {
	t.Parallel()

	items := nav.Build("/orders/ord-1", true)
	for _, it := range items {
		require.Equal(t, it.Href == "/orders", it.Active, it.Href)
	}

	// prefix boundary: /cart must not match /cartoons
	items = nav.Build("/cartoons", false)
	for _, it := range items {
		require.False(t, it.Active, it.Href)
	}
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := nav.Breadcrumbs("/orders/ord-1")
	require.Len(t, crumbs, 3)
	require.Equal(t, "Home", crumbs[0].Label)
	require.Equal(t, "My orders", crumbs[1].Label)
	require.Equal(t, "/orders", crumbs[1].Href)
	require.True(t, crumbs[2].Active)

	root := nav.Breadcrumbs("/")
	require.Len(t, root, 1)
	require.True(t, root[0].Active)
}

func TestBreadcrumbsPrettifiesUnknownSegments(t *testing.T) {
	t.Parallel()

	crumbs := nav.Breadcrumbs("/pages/returns-policy")
	require.Equal(t, "Returns policy", crumbs[2].Label)
}
