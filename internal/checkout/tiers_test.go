package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/checkout"
)

func TestDeliveryTiersSortedByFee(t *testing.T) {
	t.Parallel()

	tiers := checkout.DeliveryTiers()
	require.NotEmpty(t, tiers)
	for i := 1; i < len(tiers); i++ {
		require.LessOrEqual(t, tiers[i-1].FeeKobo, tiers[i].FeeKobo)
	}
}

func TestDeliveryTiersReturnsCopy(t *testing.T) {
	t.Parallel()

	first := checkout.DeliveryTiers()
	first[0].Label = "mutated"

	again := checkout.DeliveryTiers()
	require.NotEqual(t, "mutated", again[0].Label)
}

func TestTierByID(t *testing.T) {
	t.Parallel()

	tier, err := checkout.TierByID("standard")
	require.NoError(t, err)
	require.Equal(t, "standard", tier.ID)
	require.NotEmpty(t, tier.Label)

	_, err = checkout.TierByID("overnight-drone")
	require.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}
