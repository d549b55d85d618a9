package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty role proves
// the middleware ran, and the account id must be present for attribution.
func ctxIdentity(c echo.Context) (accountID int, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	accountID, _ = c.Get("account_id").(int)
	if accountID == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "token missing account identity")
	}

	return accountID, role, nil
}
