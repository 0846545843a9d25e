// Package webstore is the server-side analog of the browser's persisted
// key-value storage: every client-side artifact (session token, cached user,
// cached cart, saved shipping details, in-flight checkout state) lives as a
// JSON value under a fixed key inside a signed session cookie. The store is
// decoded once per request by the session middleware and passed by reference
// to the cart store and checkout orchestrator.
package webstore

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Key names one logical storage slot.
type Key string

const (
	KeyToken            Key = "auth_token"
	KeyUser             Key = "auth_user"
	KeyCart             Key = "cart"
	KeyShippingSaved    Key = "shipping_saved"
	KeyCheckoutShipping Key = "checkout_shipping"
	KeyCheckoutSession  Key = "checkout_session"
	KeyPaymentReference Key = "checkout_payment_ref"
	KeyOrderConfirmed   Key = "checkout_order_confirmed"
)

// Store holds one visitor's persisted state for the duration of a request.
// Mutations mark the store dirty; the session middleware writes the cookie
// back when the response is sent.
type Store struct {
	ID        string                 `json:"id"`
	CSRFToken string                 `json:"csrf,omitempty"`
	Values    map[Key]json.RawMessage `json:"values,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`

	dirty bool
}

// NewStore initializes a fresh store for a first-time visitor.
func NewStore() *Store {
	now := time.Now().UTC()
	return &Store{
		ID:        randID(),
		CSRFToken: randID(),
		Values:    map[Key]json.RawMessage{},
		CreatedAt: now,
		UpdatedAt: now,
		dirty:     true,
	}
}

// Get decodes the value stored under key into v. The boolean reports whether
// the key was present.
func (s *Store) Get(key Key, v any) (bool, error) {
	raw, ok := s.Values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("webstore: decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores v as JSON under key and marks the store dirty.
func (s *Store) Set(key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("webstore: encode %s: %w", key, err)
	}
	if s.Values == nil {
		s.Values = map[Key]json.RawMessage{}
	}
	s.Values[key] = raw
	s.MarkDirty()
	return nil
}

// Remove deletes the value under key. Removing an absent key is a no-op.
func (s *Store) Remove(key Key) {
	if _, ok := s.Values[key]; !ok {
		return
	}
	delete(s.Values, key)
	s.MarkDirty()
}

// Has reports whether a value is stored under key.
func (s *Store) Has(key Key) bool {
	_, ok := s.Values[key]
	return ok
}

// Token returns the backend bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	var token string
	if ok, err := s.Get(KeyToken, &token); !ok || err != nil {
		return ""
	}
	return token
}

// SetToken stores the backend bearer token.
func (s *Store) SetToken(token string) {
	_ = s.Set(KeyToken, token)
}

// ClearToken drops the bearer token.
func (s *Store) ClearToken() {
	s.Remove(KeyToken)
}

// CachedUser is the locally cached user record.
type CachedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// User returns the cached user record, or nil.
func (s *Store) User() *CachedUser {
	var u CachedUser
	if ok, err := s.Get(KeyUser, &u); !ok || err != nil {
		return nil
	}
	return &u
}

// SetUser caches the user record.
func (s *Store) SetUser(u CachedUser) {
	_ = s.Set(KeyUser, u)
}

// OrderConfirmed reports the order-confirmed flag for the current checkout.
func (s *Store) OrderConfirmed() bool {
	var confirmed bool
	if ok, err := s.Get(KeyOrderConfirmed, &confirmed); !ok || err != nil {
		return false
	}
	return confirmed
}

// SetOrderConfirmed persists the order-confirmed flag.
func (s *Store) SetOrderConfirmed(confirmed bool) {
	_ = s.Set(KeyOrderConfirmed, confirmed)
}

// ClearAuth removes the token and the cached user, e.g. on logout.
func (s *Store) ClearAuth() {
	s.Remove(KeyToken)
	s.Remove(KeyUser)
}

// ClearCheckout drops all in-flight checkout artifacts.
func (s *Store) ClearCheckout() {
	s.Remove(KeyCheckoutShipping)
	s.Remove(KeyCheckoutSession)
	s.Remove(KeyPaymentReference)
	s.Remove(KeyOrderConfirmed)
}

// MarkDirty flags the store for persistence at the end of the request.
func (s *Store) MarkDirty() {
	s.dirty = true
	s.UpdatedAt = time.Now().UTC()
}

// Dirty reports whether the store has unsaved changes.
func (s *Store) Dirty() bool { return s.dirty }

// RegenerateID assigns a new store ID and CSRF token to prevent session
// fixation after authentication.
func (s *Store) RegenerateID() {
	s.ID = randID()
	s.CSRFToken = randID()
	s.MarkDirty()
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
