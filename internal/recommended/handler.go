package recommended

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tieuluan/laptop-storefront/internal/session"
)

// DefaultLimit matches the storefront's carousel width budget.
const DefaultLimit = 8

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/recommendations", h.getRecommendations)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/buy-again", h.getBuyAgain)
}

func (h *Handler) getRecommendations(c *fiber.Ctx) error {
	limit := DefaultLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	widget := h.service.Widget(c.Context(), session.ID(c), session.OptionalUserID(c), limit)
	return c.JSON(widget)
}

func (h *Handler) getBuyAgain(c *fiber.Ctx) error {
	userID, err := session.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	limit := 0 // buy-again returns everything unless the client caps it
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	items := h.service.BuyAgain(c.Context(), userID, limit)
	return c.JSON(items)
}
