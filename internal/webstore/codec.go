package webstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// Codec signs and verifies the serialized store so the cookie cannot be
// forged or tampered with client-side.
type Codec struct {
	key []byte
}

var ErrBadCookie = errors.New("webstore: invalid or tampered cookie")

func NewCodec(signingKey []byte) *Codec {
	return &Codec{key: signingKey}
}

// Encode serializes the store into payload.signature cookie form.
func (c *Codec) Encode(s *Store) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return payload + "." + sig, nil
}

// Decode verifies the signature and deserializes the store. Any malformed or
// tampered value yields ErrBadCookie so callers fall back to a fresh store.
func (c *Codec) Decode(value string) (*Store, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return nil, ErrBadCookie
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrBadCookie
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrBadCookie
	}
	mac := hmac.New(sha256.New, c.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, ErrBadCookie
	}
	var s Store
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, ErrBadCookie
	}
	if s.Values == nil {
		s.Values = map[Key]json.RawMessage{}
	}
	return &s, nil
}
