package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errNoIdentity = errors.New("no authenticated customer in context")

// getCustomerID extracts the authenticated customer ID stored by the
// JWTAuth middleware. JWT numeric claims decode as float64; some clients
// send the subject as a string, so both are accepted.
func getCustomerID(c echo.Context) (uint64, error) {
	switch v := c.Get("customer_id").(type) {
	case float64:
		if v > 0 {
			return uint64(v), nil
		}
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			return n, nil
		}
	case uint64:
		if v > 0 {
			return v, nil
		}
	}
	return 0, errNoIdentity
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// cents renders an integer cent amount as a float for display alongside
// the exact value.
func cents(v int64) float64 {
	return float64(v) / 100.0
}
