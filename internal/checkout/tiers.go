package checkout

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
)

// DeliveryTier is one of the fixed shipping-price options selectable at
// checkout.
type DeliveryTier struct {
	ID      string `yaml:"id" json:"id"`
	Label   string `yaml:"label" json:"label"`
	FeeKobo int64  `yaml:"fee_kobo" json:"feeKobo"`
	ETA     string `yaml:"eta" json:"eta"`
}

//go:embed tiers.yaml
var tiersYAML []byte

type tiersFile struct {
	Tiers []DeliveryTier `yaml:"tiers"`
}

var deliveryTiers = mustLoadTiers()

func mustLoadTiers() []DeliveryTier {
	var file tiersFile
	if err := yaml.Unmarshal(tiersYAML, &file); err != nil {
		panic(fmt.Sprintf("checkout: parse tiers.yaml: %v", err))
	}
	if len(file.Tiers) == 0 {
		panic("checkout: tiers.yaml defines no tiers")
	}
	sort.SliceStable(file.Tiers, func(i, j int) bool {
		return file.Tiers[i].FeeKobo < file.Tiers[j].FeeKobo
	})
	return file.Tiers
}

// DeliveryTiers returns the fixed tier set in ascending fee order.
func DeliveryTiers() []DeliveryTier {
	out := make([]DeliveryTier, len(deliveryTiers))
	copy(out, deliveryTiers)
	return out
}

// TierByID resolves a tier id chosen by the user.
func TierByID(id string) (DeliveryTier, error) {
	for _, tier := range deliveryTiers {
		if tier.ID == id {
			return tier, nil
		}
	}
	return DeliveryTier{}, apperrors.New(apperrors.CodeValidation, "unknown delivery option")
}
