package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/middlewares"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
)

type RedemptionHandler struct {
	redemptionService *services.RedemptionService
	authMiddleware    *middlewares.AuthMiddleware
}

func NewRedemptionHandler(redemptionService *services.RedemptionService, authMiddleware *middlewares.AuthMiddleware) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
		authMiddleware:    authMiddleware,
	}
}

func (h *RedemptionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/companies/:id/redemptions", h.authMiddleware.AuthCaller, h.RedeemVoucher)
}

func (h *RedemptionHandler) RedeemVoucher(c *fiber.Ctx) error {
	var req models.VoucherRedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	voucher, err := h.redemptionService.RedeemVoucher(middlewares.CallerAddress(c), c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}
