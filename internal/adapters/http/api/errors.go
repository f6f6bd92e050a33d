// Package api declares HTTP contracts and route registration helpers.
package api

import "errors"

// Error definitions for the api package.
var (
	ErrBadQuery = errors.New("bad query parameter")
	ErrBadBody  = errors.New("bad request body")
)
