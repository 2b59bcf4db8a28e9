// Package handler はダッシュボードのHTTPハンドラを提供します
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uma-arai/hotel-dashboard/internal/service/dashboard"
	"github.com/uma-arai/hotel-dashboard/internal/viewstate"
)

// Service はハンドラが使う画面の組み立て処理です
type Service interface {
	dashboard.Views
	GuestReservations(ctx context.Context, guestID, selectedID int64) dashboard.ReservationSelectorView
	Occupants(ctx context.Context, reservationID, primaryGuestID int64) dashboard.OccupantsView
}

// DashboardHandler はダッシュボード画面とそのJSON APIを扱います
type DashboardHandler struct {
	service Service
}

// NewDashboardHandler は新しいDashboardHandlerを作成します
func NewDashboardHandler(service Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

// detailStatus は詳細画面の状態をHTTPステータスに変換します
func detailStatus(phase viewstate.Phase) int {
	switch phase {
	case viewstate.PhaseNotFound:
		return http.StatusNotFound
	case viewstate.PhaseFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// Page はモードと選択状態に応じたダッシュボードのHTMLを返します
// GET /?mode=guest|reservation&guest=&reservation=&q=
func (h *DashboardHandler) Page(c echo.Context) error {
	guestID, err := queryID(c, "guest")
	if err != nil {
		return badRequest(c, err)
	}
	reservationID, err := queryID(c, "reservation")
	if err != nil {
		return badRequest(c, err)
	}

	composer := dashboard.NewComposer(h.service)
	composer.SetMode(dashboard.ParseMode(c.QueryParam("mode")))
	composer.SetSearch(c.QueryParam("q"))
	switch composer.Mode() {
	case dashboard.ModeReservation:
		composer.SelectReservation(reservationID)
	default:
		composer.SelectGuest(guestID)
	}

	page := composer.Compose(c.Request().Context())
	return c.Render(http.StatusOK, pageTemplate, page)
}

// ListGuests は宿泊者セレクタを返します
// GET /api/guests?q=&selected=
func (h *DashboardHandler) ListGuests(c echo.Context) error {
	selected, err := queryID(c, "selected")
	if err != nil {
		return badRequest(c, err)
	}
	view := h.service.GuestSelector(c.Request().Context(), c.QueryParam("q"), selected)
	return c.JSON(http.StatusOK, view)
}

// GetGuest は宿泊者詳細を返します
// GET /api/guests/:id
func (h *DashboardHandler) GetGuest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	view := h.service.GuestDetail(c.Request().Context(), id)
	return c.JSON(detailStatus(view.Phase), view)
}

// ListGuestReservations は宿泊者の予約一覧を返します
// GET /api/guests/:id/reservations?selected=
func (h *DashboardHandler) ListGuestReservations(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	selected, err := queryID(c, "selected")
	if err != nil {
		return badRequest(c, err)
	}
	view := h.service.GuestReservations(c.Request().Context(), id, selected)
	return c.JSON(http.StatusOK, view)
}

// ListReservations は全予約のセレクタを返します
// GET /api/reservations?q=&selected=
func (h *DashboardHandler) ListReservations(c echo.Context) error {
	selected, err := queryID(c, "selected")
	if err != nil {
		return badRequest(c, err)
	}
	view := h.service.ReservationSelector(c.Request().Context(), c.QueryParam("q"), selected)
	return c.JSON(http.StatusOK, view)
}

// GetReservation は予約詳細と消費明細を返します
// GET /api/reservations/:id
func (h *DashboardHandler) GetReservation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	view := h.service.ReservationDetail(c.Request().Context(), id)
	return c.JSON(detailStatus(view.Phase), view)
}

// ListOccupants は予約の同伴者一覧を返します
// GET /api/reservations/:id/occupants?primary=
func (h *DashboardHandler) ListOccupants(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	primary, err := queryID(c, "primary")
	if err != nil {
		return badRequest(c, err)
	}
	view := h.service.Occupants(c.Request().Context(), id, primary)
	return c.JSON(detailStatus(view.Phase), view)
}
