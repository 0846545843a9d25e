package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"gidiparts.ng/gidiparts-web/internal/api"
	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/logging"
	"gidiparts.ng/gidiparts-web/internal/webstore"
)

// Store synchronizes the visitor's cart with the backend and the webstore
// cache. It is safe for concurrent use; mutations against the same cart are
// serialized so rapid double-interactions cannot produce lost updates.
type Store struct {
	api     *api.Client
	pricing Pricing

	flight singleflight.Group

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore builds a cart store over the backend client.
func NewStore(client *api.Client, pricing Pricing) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("cart: api client required")
	}
	return &Store{
		api:     client,
		pricing: pricing,
		locks:   map[string]*sync.Mutex{},
	}, nil
}

// serverCart mirrors the backend cart payload.
type serverCart struct {
	ID    string `json:"id"`
	Items []struct {
		ID        string `json:"id"`
		ProductID string `json:"productId"`
		Name      string `json:"name"`
		ImageURL  string `json:"imageUrl"`
		UnitKobo  int64  `json:"unitPriceKobo"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Totals *struct {
		SubtotalKobo int64 `json:"subtotalKobo"`
		TaxKobo      int64 `json:"taxKobo"`
		ShippingKobo int64 `json:"shippingKobo"`
		TotalKobo    int64 `json:"totalKobo"`
	} `json:"totals"`
}

// Get returns the current cart. With a session token the backend is the
// source and the cache is overwritten on success; on fetch failure, or when
// unauthenticated, the last cached copy is served.
func (s *Store) Get(ctx context.Context, ws *webstore.Store) (Snapshot, error) {
	token := ws.Token()
	if token == "" {
		return s.cached(ws), nil
	}

	fetched, err, _ := s.flight.Do(token, func() (any, error) {
		var payload serverCart
		if err := s.api.Get(ctx, "/cart", token, &payload); err != nil {
			return nil, err
		}
		return s.fromServer(payload), nil
	})
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("cart fetch failed, serving cached copy")
		return s.cached(ws), nil
	}

	snap := fetched.(Snapshot)
	s.saveCache(ws, snap)
	return snap, nil
}

// Add inserts a product line. It requires a session; unauthenticated calls
// fail without touching the cart. The local copy is updated optimistically and
// reconciled against the backend response, or rolled back on failure.
func (s *Store) Add(ctx context.Context, ws *webstore.Store, productID string, quantity int) (Snapshot, error) {
	if productID == "" {
		return s.cached(ws), apperrors.New(apperrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}
	token := ws.Token()
	if token == "" {
		return s.cached(ws), apperrors.New(apperrors.CodeUnauthenticated, "sign in to add items to your cart")
	}

	return s.commit(ctx, ws, token,
		func(snap *Snapshot) {
			for i := range snap.Lines {
				if snap.Lines[i].ProductID == productID {
					snap.Lines[i].Quantity += quantity
					return
				}
			}
			snap.Lines = append(snap.Lines, Line{
				ID:        "pending-" + productID,
				ProductID: productID,
				Quantity:  quantity,
			})
		},
		func(ctx context.Context) (*serverCart, error) {
			body := map[string]any{"productId": productID, "quantity": quantity}
			var payload serverCart
			if err := s.api.Post(ctx, "/cart/items", token, body, &payload); err != nil {
				return nil, err
			}
			return &payload, nil
		},
	)
}

// UpdateQuantity changes a line's quantity locally. Quantities below 1 are
// clamped to 1. This operation never calls the backend.
func (s *Store) UpdateQuantity(ws *webstore.Store, lineID string, quantity int) (Snapshot, error) {
	if quantity < 1 {
		quantity = 1
	}
	snap := s.cached(ws)
	found := false
	for i := range snap.Lines {
		if snap.Lines[i].ID == lineID {
			snap.Lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return snap, apperrors.New(apperrors.CodeNotFound, "cart line not found")
	}
	snap.Summary = s.pricing.Summarize(snap.Lines)
	snap.UpdatedAt = time.Now().UTC()
	s.saveCache(ws, snap)
	return snap, nil
}

// Remove deletes a line optimistically and persists the removal.
func (s *Store) Remove(ctx context.Context, ws *webstore.Store, lineID string) (Snapshot, error) {
	token := ws.Token()
	if token == "" {
		return s.cached(ws), apperrors.New(apperrors.CodeUnauthenticated, "sign in to manage your cart")
	}

	return s.commit(ctx, ws, token,
		func(snap *Snapshot) {
			lines := snap.Lines[:0]
			for _, line := range snap.Lines {
				if line.ID != lineID {
					lines = append(lines, line)
				}
			}
			snap.Lines = lines
		},
		func(ctx context.Context) (*serverCart, error) {
			var payload serverCart
			if err := s.api.Delete(ctx, "/cart/items/"+lineID, token, &payload); err != nil {
				return nil, err
			}
			return &payload, nil
		},
	)
}

// Clear empties the cart. On success the local cache is cleared
// unconditionally; on failure the previous state is restored. Clearing an
// already-empty cart succeeds.
func (s *Store) Clear(ctx context.Context, ws *webstore.Store) (Snapshot, error) {
	token := ws.Token()
	if token == "" {
		// no server cart to clear; drop the local copy
		ws.Remove(webstore.KeyCart)
		return s.cached(ws), nil
	}

	snap, err := s.commit(ctx, ws, token,
		func(snap *Snapshot) {
			snap.Lines = nil
		},
		func(ctx context.Context) (*serverCart, error) {
			if err := s.api.Post(ctx, "/cart/clear", token, nil, nil); err != nil {
				return nil, err
			}
			return nil, nil
		},
	)
	if err != nil {
		return snap, err
	}
	ws.Remove(webstore.KeyCart)
	return s.cached(ws), nil
}

// commit runs one optimistic mutation: snapshot the pre-call state, apply the
// local change, attempt the backend call, then reconcile the server response
// or roll back. Mutations on the same cart are serialized.
func (s *Store) commit(
	ctx context.Context,
	ws *webstore.Store,
	token string,
	apply func(*Snapshot),
	remote func(context.Context) (*serverCart, error),
) (Snapshot, error) {
	lock := s.lockFor(token)
	lock.Lock()
	defer lock.Unlock()

	prev := s.cached(ws)

	next := prev.Clone()
	apply(&next)
	next.Summary = s.pricing.Summarize(next.Lines)
	next.UpdatedAt = time.Now().UTC()
	s.saveCache(ws, next)

	payload, err := remote(ctx)
	if err != nil {
		s.saveCache(ws, prev)
		return prev, err
	}

	if payload == nil {
		return next, nil
	}
	reconciled := s.fromServer(*payload)
	s.saveCache(ws, reconciled)
	return reconciled, nil
}

func (s *Store) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *Store) cached(ws *webstore.Store) Snapshot {
	var snap Snapshot
	if ok, err := ws.Get(webstore.KeyCart, &snap); !ok || err != nil {
		return Snapshot{Summary: s.pricing.Summarize(nil)}
	}
	// keep server-authoritative totals; refresh only local estimates
	if snap.Summary.Estimated || snap.Summary == (Summary{}) {
		snap.Summary = s.pricing.Summarize(snap.Lines)
	}
	return snap
}

func (s *Store) saveCache(ws *webstore.Store, snap Snapshot) {
	_ = ws.Set(webstore.KeyCart, snap)
}

func (s *Store) fromServer(payload serverCart) Snapshot {
	snap := Snapshot{
		CartID:    payload.ID,
		Lines:     make([]Line, 0, len(payload.Items)),
		UpdatedAt: time.Now().UTC(),
	}
	for _, item := range payload.Items {
		snap.Lines = append(snap.Lines, Line{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Name:          item.Name,
			ImageURL:      item.ImageURL,
			UnitPriceKobo: item.UnitKobo,
			Quantity:      item.Quantity,
		})
	}
	if payload.Totals != nil {
		snap.Summary = Summary{
			SubtotalKobo: payload.Totals.SubtotalKobo,
			TaxKobo:      payload.Totals.TaxKobo,
			ShippingKobo: payload.Totals.ShippingKobo,
			TotalKobo:    payload.Totals.TotalKobo,
			Estimated:    false,
		}
	} else {
		snap.Summary = s.pricing.Summarize(snap.Lines)
	}
	return snap
}
