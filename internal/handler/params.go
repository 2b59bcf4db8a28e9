package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errInvalidID = errors.New("invalid id")

// pathID はパスパラメータのIDを正の整数として読み取ります
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// queryID はクエリパラメータのIDを読み取ります。未指定の場合は0を返します
func queryID(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, errInvalidID
	}
	return id, nil
}
