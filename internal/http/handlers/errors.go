// Package handlers maps service and decoding errors onto the HTTP error
// taxonomy in internal/apperr. The messages below are part of the public
// surface; clients and tests match on them.
package handlers

import (
	"errors"
	"net/http"

	"github.com/tbourn/farmstand/internal/apperr"
	"github.com/tbourn/farmstand/internal/services"
)

const (
	MsgFarmNotFound     = "Farm not found"
	MsgProductNotFound  = "Product not found"
	MsgPageDoesNotExist = "Page Does Not Exist, try products/new"
	MsgRouteNotFound    = "Page Not Found"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgBadBody          = "Request body could not be read"
	MsgBodyTooLarge     = "Request body too large"
)

var errBadBody = apperr.BadRequest(MsgBadBody)

// bodyError maps a payload read failure: 413 past the body cap, 400 otherwise.
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.New(http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
	}
	return errBadBody
}

// mapError rewrites service sentinels into their 404s. Everything else is
// returned unchanged for the translator chain.
func mapError(err error) error {
	switch {
	case errors.Is(err, services.ErrFarmNotFound):
		return apperr.NotFound(MsgFarmNotFound)
	case errors.Is(err, services.ErrProductNotFound):
		return apperr.NotFound(MsgProductNotFound)
	}
	return err
}
