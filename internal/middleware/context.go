package middleware

import (
	"context"

	"gidiparts.ng/gidiparts-web/internal/webstore"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX ctxKey = "is_htmx"
	ctxKeyStore  ctxKey = "webstore"
	ctxKeyUser   ctxKey = "user"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// User represents the authenticated visitor attached to the request context.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// WithUser stores user in context
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// UserFromContext returns user if present
func UserFromContext(ctx context.Context) *User {
	if v := ctx.Value(ctxKeyUser); v != nil {
		if u, ok := v.(*User); ok {
			return u
		}
	}
	return nil
}

// WithStore attaches a webstore to the context. The session middleware does
// this on every request; tests compose it directly.
func WithStore(ctx context.Context, s *webstore.Store) context.Context {
	return context.WithValue(ctx, ctxKeyStore, s)
}

// StoreFromContext returns the request's webstore. The session middleware
// guarantees one is present on every routed request.
func StoreFromContext(ctx context.Context) *webstore.Store {
	if v := ctx.Value(ctxKeyStore); v != nil {
		if s, ok := v.(*webstore.Store); ok {
			return s
		}
	}
	return webstore.NewStore()
}
