// Package handlers provides the HTTP handlers for the farm stand pages.
//
// This file defines the response utilities shared by every endpoint. Pages are
// server-rendered HTML; a client sending Accept: application/json receives the
// same view data as JSON. Handlers never write failures themselves: fail()
// attaches the error to the request and the error chain answers it.
//
// Conventions:
//   - Success with a page: render(c, "products/index", ProductListView{...}).
//   - Success with a mutation: redirect(c, "/products/<id>") (302).
//   - Failure: fail(c, err); return.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// offered lists the representations every page supports, HTML first so that
// clients without a preference get the page.
var offered = []string{binding.MIMEHTML, binding.MIMEJSON}

// render writes a page with status 200 in the negotiated format.
func render(c *gin.Context, page string, data any) {
	c.Header("Vary", "Accept")
	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  offered,
		HTMLName: page,
		Data:     data,
	})
}

// format returns the short name of the negotiated representation.
func format(c *gin.Context) string {
	if c.NegotiateFormat(offered...) == binding.MIMEJSON {
		return "json"
	}
	return "html"
}

// redirect answers a successful mutation with 302 Found.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// fail attaches err, mapped to the HTTP taxonomy, and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(mapError(err))
	c.Abort()
}

// Fail is the exported variant of fail() for handlers mounted by the router.
func Fail(c *gin.Context, err error) { fail(c, err) }

// payload reads the request body as an untyped map. JSON bodies are decoded
// as-is; anything else is parsed as a form.
func payload(c *gin.Context) (map[string]any, error) {
	if isJSON(c.Request) {
		out := map[string]any{}
		if c.Request.Body == nil {
			return out, nil
		}
		err := json.NewDecoder(c.Request.Body).Decode(&out)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		return out, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	out := make(map[string]any, len(c.Request.PostForm))
	for k, vv := range c.Request.PostForm {
		if len(vv) > 0 {
			out[k] = vv[0]
		}
	}
	return out, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == binding.MIMEJSON
}
