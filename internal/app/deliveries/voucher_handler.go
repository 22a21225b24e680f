package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/errors"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/middlewares"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
)

type VoucherHandler struct {
	voucherService *services.VoucherService
	authMiddleware *middlewares.AuthMiddleware
}

func NewVoucherHandler(voucherService *services.VoucherService, authMiddleware *middlewares.AuthMiddleware) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
		authMiddleware: authMiddleware,
	}
}

func (h *VoucherHandler) RegisterRoutes(router fiber.Router) {
	voucherGroup := router.Group("/companies/:id/vouchers")

	// Public endpoints
	voucherGroup.Get("/", h.GetVouchers)
	voucherGroup.Get("/:index", h.GetVoucher)

	// Company-privileged endpoints
	voucherGroup.Post("/", h.authMiddleware.AuthCaller, h.CreateVoucher)
	voucherGroup.Post("/:index/activate", h.authMiddleware.AuthCaller, h.ActivateVoucher)
	voucherGroup.Post("/:index/deactivate", h.authMiddleware.AuthCaller, h.DeactivateVoucher)
	voucherGroup.Post("/:index/decline", h.authMiddleware.AuthCaller, h.DeclineVoucher)
}

func parseVoucherIndex(c *fiber.Ctx) (int64, error) {
	index, err := strconv.ParseInt(c.Params("index"), 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("Invalid voucher index format")
	}
	return index, nil
}

func (h *VoucherHandler) CreateVoucher(c *fiber.Ctx) error {
	var req models.VoucherCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	voucher, err := h.voucherService.CreateVoucher(middlewares.CallerAddress(c), c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}

func (h *VoucherHandler) ActivateVoucher(c *fiber.Ctx) error {
	index, err := parseVoucherIndex(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	voucher, err := h.voucherService.ActivateVoucher(middlewares.CallerAddress(c), c.Params("id"), index)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}

func (h *VoucherHandler) DeactivateVoucher(c *fiber.Ctx) error {
	index, err := parseVoucherIndex(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	voucher, err := h.voucherService.DeactivateVoucher(middlewares.CallerAddress(c), c.Params("id"), index)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}

func (h *VoucherHandler) DeclineVoucher(c *fiber.Ctx) error {
	index, err := parseVoucherIndex(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	voucher, err := h.voucherService.DeclineVoucher(middlewares.CallerAddress(c), c.Params("id"), index)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}

func (h *VoucherHandler) GetVoucher(c *fiber.Ctx) error {
	index, err := parseVoucherIndex(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	voucher, err := h.voucherService.GetVoucher(c.Params("id"), index)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, voucher)
}

func (h *VoucherHandler) GetVouchers(c *fiber.Ctx) error {
	pagination := models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	vouchers, err := h.voucherService.GetVouchers(c.Params("id"), &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, vouchers)
}
