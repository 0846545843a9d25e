package middleware

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"gidiparts.ng/gidiparts-web/internal/webstore"
)

// SessionOptions configures the storage cookie.
type SessionOptions struct {
	CookieName string
	SigningKey []byte
	TTL        time.Duration
	Secure     bool
}

// Sessions decodes the storage cookie into a webstore.Store, attaches it to
// the request context, and writes the cookie back when the store is dirty.
type Sessions struct {
	opts  SessionOptions
	codec *webstore.Codec
	log   zerolog.Logger
}

func NewSessions(opts SessionOptions, log zerolog.Logger) *Sessions {
	if opts.CookieName == "" {
		opts.CookieName = "GIDIPARTS_SESSION"
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	if len(opts.SigningKey) == 0 {
		// process-ephemeral key; sessions won't survive a restart
		key := make([]byte, 32)
		if _, err := rand.Read(key); err == nil {
			opts.SigningKey = key
			log.Warn().Msg("session: using ephemeral signing key, set GIDIPARTS_SESSION_SIGNING_KEY for production")
		} else {
			opts.SigningKey = []byte("insecure-dev-key-set-GIDIPARTS_SESSION_SIGNING_KEY")
			log.Error().Err(err).Msg("session: failed to generate signing key")
		}
	}
	return &Sessions{
		opts:  opts,
		codec: webstore.NewCodec(opts.SigningKey),
		log:   log,
	}
}

// Handler is the session middleware.
func (s *Sessions) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, fromCookie := s.read(r)
		ctx := WithStore(r.Context(), store)

		rw := NewResponseRecorder(w)
		// the cookie is HttpOnly; the client reads the token from here
		rw.Header().Set(CSRFHeader, store.CSRFToken)
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if store.Dirty() || !fromCookie {
				s.write(w, store)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// nothing written yet (e.g. HEAD): persist now
		if !rw.Wrote() && (store.Dirty() || !fromCookie) {
			s.write(w, store)
		}
	})
}

func (s *Sessions) read(r *http.Request) (*webstore.Store, bool) {
	c, err := r.Cookie(s.opts.CookieName)
	if err != nil || c.Value == "" {
		return webstore.NewStore(), false
	}
	store, err := s.codec.Decode(c.Value)
	if err != nil {
		return webstore.NewStore(), false
	}
	return store, true
}

func (s *Sessions) write(w http.ResponseWriter, store *webstore.Store) {
	value, err := s.codec.Encode(store)
	if err != nil {
		s.log.Error().Err(err).Msg("session: encode cookie")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.opts.TTL),
	})
}
