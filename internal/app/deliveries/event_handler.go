package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
)

type EventHandler struct {
	eventService *services.EventService
	custody      *services.LedgerCustody
}

func NewEventHandler(eventService *services.EventService, custody *services.LedgerCustody) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		custody:      custody,
	}
}

func (h *EventHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/companies/:id/events", h.GetEvents)
	router.Get("/companies/:id/custody-transfers", h.GetCustodyTransfers)
}

func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	pagination := models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	events, err := h.eventService.GetEvents(c.Params("id"), &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, events)
}

func (h *EventHandler) GetCustodyTransfers(c *fiber.Ctx) error {
	pagination := models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	transfers, err := h.custody.GetTransfers(c.Params("id"), &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, transfers)
}
