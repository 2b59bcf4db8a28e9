package router

import (
	"github.com/labstack/echo/v4"

	"github.com/uma-arai/hotel-dashboard/internal/handler"
)

// RegisterRoutes は認証を必要としないヘルスチェックを登録します
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterDashboard はダッシュボード画面と参照用のJSON APIを登録します
// すべて読み取り専用のため GET のみです
func RegisterDashboard(e *echo.Echo, h *handler.DashboardHandler) {
	e.GET("/", h.Page)

	api := e.Group("/api")
	api.GET("/guests", h.ListGuests)
	api.GET("/guests/:id", h.GetGuest)
	api.GET("/guests/:id/reservations", h.ListGuestReservations)
	api.GET("/reservations", h.ListReservations)
	api.GET("/reservations/:id", h.GetReservation)
	api.GET("/reservations/:id/occupants", h.ListOccupants)
}
