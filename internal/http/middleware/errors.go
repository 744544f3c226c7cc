// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the error chain. Handlers never write failure
// responses; they attach the error with c.Error and return. ErrorChain waits
// for the rest of the chain, runs the last attached error through an ordered
// list of translators and hands the result to a terminal Responder, which
// owns the response.
//
// The translator order is explicit at the call site:
//
//	r.Use(middleware.ErrorChain(
//	    []apperr.Translator{apperr.TranslatePersistenceValidation},
//	    middleware.PlainTextResponder,
//	))
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/farmstand/internal/apperr"
)

// Responder writes the final response for a translated error.
type Responder func(c *gin.Context, err error)

// ErrorChain returns a middleware that translates and answers errors attached
// by downstream handlers. It must run before Recovery so recovered panics,
// which Recovery attaches as errors, reach the chain too.
func ErrorChain(translators []apperr.Translator, terminal Responder) gin.HandlerFunc {
	chain := append([]apperr.Translator(nil), translators...)
	if terminal == nil {
		terminal = PlainTextResponder
	}
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		if c.Writer.Written() {
			LoggerFrom(c).Warn().Err(last.Err).Msg("error after response was written")
			return
		}
		terminal(c, apperr.Apply(last.Err, chain...))
	}
}

// PlainTextResponder answers with the error's status and message as a
// text/plain body. Errors outside the apperr taxonomy become 500 "Something
// went wrong"; their detail goes to the log only.
func PlainTextResponder(c *gin.Context, err error) {
	status, msg := apperr.Resolve(err)
	if status >= 500 {
		LoggerFrom(c).Error().
			Err(err).
			Int("status", status).
			Msg("request failed")
	}
	c.Abort()
	c.String(status, msg)
}
