package cart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/cart"
)

func TestSummarizeTotals(t *testing.T) {
	t.Parallel()

	pricing := cart.Pricing{TaxRateBps: 750, FlatShippingKobo: 1500}
	lines := []cart.Line{
		{ID: "l1", ProductID: "p1", UnitPriceKobo: 1000, Quantity: 2},
		{ID: "l2", ProductID: "p2", UnitPriceKobo: 500, Quantity: 1},
	}

	summary := pricing.Summarize(lines)

	require.Equal(t, int64(2500), summary.SubtotalKobo)
	// 7.5% of 2500 = 187.5, rounded half away from zero
	require.Equal(t, int64(188), summary.TaxKobo)
	require.Equal(t, int64(1500), summary.ShippingKobo)
	require.Equal(t, int64(2500+188+1500), summary.TotalKobo)
	require.True(t, summary.Estimated)
}

func TestSummarizeEmptyCartSkipsShipping(t *testing.T) {
	t.Parallel()

	pricing := cart.Pricing{TaxRateBps: 750, FlatShippingKobo: 1500}
	summary := pricing.Summarize(nil)

	require.Zero(t, summary.SubtotalKobo)
	require.Zero(t, summary.TaxKobo)
	require.Zero(t, summary.ShippingKobo)
	require.Zero(t, summary.TotalKobo)
	require.True(t, summary.Estimated)
}

func TestSnapshotCloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	orig := cart.Snapshot{
		Lines: []cart.Line{{ID: "l1", ProductID: "p1", Quantity: 1}},
	}
	clone := orig.Clone()
	clone.Lines[0].Quantity = 99

	require.Equal(t, 1, orig.Lines[0].Quantity)
	require.Equal(t, 99, clone.Lines[0].Quantity)
}
