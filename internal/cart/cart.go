// Package cart presents a single consistent view of the visitor's cart. The
// backend owns the cart; the webstore keeps a read-through cache that the
// server view overwrites on every successful fetch. Mutations are optimistic:
// the local copy changes first and is rolled back when the backend rejects
// the call.
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one cart entry: a single product at a given quantity.
type Line struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	Name          string `json:"name,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	UnitPriceKobo int64  `json:"unitPriceKobo"`
	Quantity      int    `json:"quantity"`
}

// Summary is the derived cart totals block. Estimated is true when the
// numbers were computed locally; authoritative totals come from the backend
// during checkout and take precedence.
type Summary struct {
	SubtotalKobo int64 `json:"subtotalKobo"`
	TaxKobo      int64 `json:"taxKobo"`
	ShippingKobo int64 `json:"shippingKobo"`
	TotalKobo    int64 `json:"totalKobo"`
	Estimated    bool  `json:"estimated"`
}

// Snapshot is the full local view of a cart at a point in time.
type Snapshot struct {
	CartID    string    `json:"cartId,omitempty"`
	Lines     []Line    `json:"lines"`
	Summary   Summary   `json:"summary"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone deep-copies the snapshot so optimistic mutations never alias the
// pre-call state they may need to roll back to.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Lines = make([]Line, len(s.Lines))
	copy(out.Lines, s.Lines)
	return out
}

// Empty reports whether the snapshot holds no lines.
func (s Snapshot) Empty() bool { return len(s.Lines) == 0 }

// Pricing holds the presentation-layer estimate parameters.
type Pricing struct {
	TaxRateBps       int64
	FlatShippingKobo int64
}

// Summarize derives the estimate block from the given lines: subtotal over
// all lines, tax at the configured rate, flat shipping when the cart is
// non-empty.
func (p Pricing) Summarize(lines []Line) Summary {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPriceKobo * int64(line.Quantity)
	}

	tax := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(p.TaxRateBps)).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()

	var shipping int64
	if subtotal > 0 {
		shipping = p.FlatShippingKobo
	}

	return Summary{
		SubtotalKobo: subtotal,
		TaxKobo:      tax,
		ShippingKobo: shipping,
		TotalKobo:    subtotal + tax + shipping,
		Estimated:    true,
	}
}
