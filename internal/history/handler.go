package history

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tieuluan/laptop-storefront/internal/session"
)

// Handler exposes the tracking endpoints. View tracking and history reads
// serve anonymous visitors too; only the login sync requires a token.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/track/view", h.trackView)
	app.Get("/api/v1/track/history", h.listHistory)
	app.Get("/api/v1/track/recent", h.listRecent)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/track/sync", h.syncHistory)
}

type trackViewRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) trackView(c *fiber.Ctx) error {
	payload := new(trackViewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	h.service.RecordView(c.Context(), session.ID(c), session.OptionalUserID(c), payload.ProductID)
	// tracking is best-effort, the response never reports a failure
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *Handler) listHistory(c *fiber.Ctx) error {
	ids := h.service.ListViewedIDs(c.Context(), session.ID(c), session.OptionalUserID(c))
	return c.JSON(ids)
}

func (h *Handler) listRecent(c *fiber.Ctx) error {
	return c.JSON(h.service.RecentlyViewed(session.ID(c)))
}

func (h *Handler) syncHistory(c *fiber.Ctx) error {
	userID, err := session.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	// runs once right after login; success or failure, the client gets 204
	h.service.SyncOnLogin(c.Context(), session.ID(c), userID)
	return c.SendStatus(fiber.StatusNoContent)
}
