// Package orders fetches and shapes order and return-request data for
// display. The backend's order payloads are inconsistent across endpoints;
// this layer normalizes them so callers always see a flat status string and a
// non-nil products slice.
package orders

import (
	"encoding/json"
	"strings"
	"time"
)

// Product is a product embedded in an order response.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Item is one purchased line of an order.
type Item struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitKobo  int64  `json:"unitPriceKobo"`
}

// Event is a timeline entry on an order.
type Event struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// Order is the normalized read model.
type Order struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	PlacedAt  time.Time `json:"placedAt"`
	TotalKobo int64     `json:"totalKobo"`
	Products  []Product `json:"products"`
	Items     []Item    `json:"items"`
	Timeline  []Event   `json:"timeline,omitempty"`
}

// orderPayload is the raw backend shape. Status may arrive as a bare string
// or as a nested object; products may be absent entirely.
type orderPayload struct {
	ID        string          `json:"id"`
	Status    json.RawMessage `json:"status"`
	PlacedAt  time.Time       `json:"placedAt"`
	TotalKobo int64           `json:"totalKobo"`
	Products  []Product       `json:"products"`
	Items     []Item          `json:"items"`
	Timeline  []Event         `json:"timeline"`
}

func (p orderPayload) normalize() Order {
	order := Order{
		ID:        p.ID,
		Status:    normalizeStatus(p.Status),
		PlacedAt:  p.PlacedAt,
		TotalKobo: p.TotalKobo,
		Products:  p.Products,
		Items:     p.Items,
		Timeline:  p.Timeline,
	}
	if order.Products == nil {
		order.Products = []Product{}
	}
	if order.Items == nil {
		order.Items = []Item{}
	}
	return order
}

// normalizeStatus flattens whichever shape the backend sent into a single
// lowercase string. Known shapes: "shipped", {"name":"shipped"},
// {"status":"shipped"}.
func normalizeStatus(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "unknown"
	}
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return cleanStatus(bare)
	}
	var nested struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested.Name != "" {
			return cleanStatus(nested.Name)
		}
		if nested.Status != "" {
			return cleanStatus(nested.Status)
		}
	}
	return "unknown"
}

func cleanStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return s
}
