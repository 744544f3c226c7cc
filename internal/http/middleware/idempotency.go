// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotent form submission for the create routes. A
// client may send an Idempotency-Key header with a POST. The first request
// with a given key runs normally; when it ends in a redirect, the redirect
// target is stored under (scope, key). A repeat within the TTL is answered
// with the stored redirect and never reaches the handler, so a double-clicked
// submit button creates one record.
//
// The scope is the method plus the request path, so the same key used on
// /farms and on /farms/<id>/products does not collide.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/farmstand/internal/apperr"
	"github.com/tbourn/farmstand/internal/domain"
	"github.com/tbourn/farmstand/internal/repo"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed marks responses served from a stored record.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: true when a stored replay was served
)

// IdempotencyStore persists idempotency records. repo.Store and
// docstore.Store implement it; misses are reported as repo.ErrNotFound and
// lost insert races as repo.ErrDuplicate.
type IdempotencyStore interface {
	GetIdempotency(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, scope, key, location string, status int, ttl time.Duration) (*domain.Idempotency, error)
}

// GetIdempotencyKey returns the validated key stashed by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the request was answered from a stored record.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// TTL is how long a stored redirect is replayed. Values <= 0 default to 24h.
	TTL time.Duration
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Defaults to ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyScope returns the scope a request's key is stored under.
func IdempotencyScope(c *gin.Context) string {
	p := c.Request.URL.Path
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return c.Request.Method + " " + p
}

// IdempotencyValidator applies to POST requests carrying Idempotency-Key.
// Other requests pass through untouched.
//
//   - Malformed key: 400 through the error chain.
//   - Stored record: redirect to its Location and stop. Place the validator
//     before the rate limiter so replays cost no tokens.
//   - No record: run the handler; a successful redirect is stored.
//
// Store failures never fail the request; they are logged and the request is
// processed as if no key had been sent.
func IdempotencyValidator(opts IdempotencyOptions, store IdempotencyStore) gin.HandlerFunc {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || c.Request.Method != http.MethodPost || store == nil {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			_ = c.Error(apperr.BadRequest("invalid Idempotency-Key"))
			c.Abort()
			return
		}
		c.Set(ctxKeyIdemKey, key)

		ctx := c.Request.Context()
		scope := IdempotencyScope(c)
		lg := LoggerFrom(c)

		rec, err := store.GetIdempotency(ctx, scope, key, time.Now().UTC())
		switch {
		case err == nil && rec != nil:
			c.Set(ctxKeyIdemReplay, true)
			c.Header(HeaderIdempotencyReplayed, "true")
			c.Redirect(rec.Status, rec.Location)
			c.Abort()
			return
		case err != nil && !errors.Is(err, repo.ErrNotFound):
			lg.Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
		}

		c.Next()

		status := c.Writer.Status()
		loc := c.Writer.Header().Get("Location")
		if len(c.Errors) > 0 || status < 300 || status >= 400 || loc == "" {
			return
		}
		if _, err := store.CreateIdempotency(ctx, scope, key, loc, status, ttl); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			lg.Warn().Err(err).Str("scope", scope).Msg("idempotency store failed")
		}
	}
}
