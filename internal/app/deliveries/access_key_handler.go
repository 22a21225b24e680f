package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/middlewares"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
)

type AccessKeyHandler struct {
	accessKeyService *services.AccessKeyService
	authMiddleware   *middlewares.AuthMiddleware
}

func NewAccessKeyHandler(accessKeyService *services.AccessKeyService, authMiddleware *middlewares.AuthMiddleware) *AccessKeyHandler {
	return &AccessKeyHandler{
		accessKeyService: accessKeyService,
		authMiddleware:   authMiddleware,
	}
}

func (h *AccessKeyHandler) RegisterRoutes(router fiber.Router) {
	keyGroup := router.Group("/access-keys")

	keyGroup.Post("/", h.RegisterKey)
	keyGroup.Delete("/:id", h.authMiddleware.AuthCaller, h.RevokeKey)
}

func (h *AccessKeyHandler) RegisterKey(c *fiber.Ctx) error {
	var req models.AccessKeyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	resp, err := h.accessKeyService.RegisterKey(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, resp)
}

func (h *AccessKeyHandler) RevokeKey(c *fiber.Ctx) error {
	err := h.accessKeyService.RevokeKey(middlewares.CallerAddress(c), c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
