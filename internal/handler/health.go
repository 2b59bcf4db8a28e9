package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health はロードバランサ向けのヘルスチェックです
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
