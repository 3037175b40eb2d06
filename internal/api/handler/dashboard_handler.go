package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the Phase-1 dashboard shells. The payloads carry no
// data yet; the endpoints exist so the role gates have something to guard and
// the client shells something to render.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Admin returns the admin dashboard shell.
//
// @Summary      Admin dashboard shell
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	email, _ := c.Get("email").(string)
	return c.JSON(http.StatusOK, map[string]any{
		"title": "Admin Dashboard",
		"email": email,
		"sections": []string{
			"events", "attendance", "athletes", "debts", "financial",
		},
	})
}

// Athlete returns the athlete dashboard shell.
//
// @Summary      Athlete dashboard shell
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /athlete/dashboard [get]
func (h *DashboardHandler) Athlete(c echo.Context) error {
	email, _ := c.Get("email").(string)
	return c.JSON(http.StatusOK, map[string]any{
		"title": "Athlete Dashboard",
		"email": email,
		"sections": []string{
			"events", "attendance", "debts", "profile",
		},
	})
}
