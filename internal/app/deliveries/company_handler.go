package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/middlewares"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
)

type CompanyHandler struct {
	companyService *services.CompanyService
	authMiddleware *middlewares.AuthMiddleware
}

func NewCompanyHandler(companyService *services.CompanyService, authMiddleware *middlewares.AuthMiddleware) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		authMiddleware: authMiddleware,
	}
}

func (h *CompanyHandler) RegisterRoutes(router fiber.Router) {
	companyGroup := router.Group("/companies")

	// Public read projections
	companyGroup.Get("/:id", h.GetCompany)
	companyGroup.Get("/:id/balance", h.GetBalance)

	// Company-privileged operations
	companyGroup.Post("/", h.authMiddleware.AuthCaller, h.CreateCompany)
	companyGroup.Post("/:id/funds", h.authMiddleware.AuthCaller, h.AddFunds)
	companyGroup.Post("/:id/withdrawals", h.authMiddleware.AuthCaller, h.WithdrawFunds)
}

func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	var req models.CompanyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	company, err := h.companyService.CreateCompany(middlewares.CallerAddress(c), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, company)
}

func (h *CompanyHandler) GetCompany(c *fiber.Ctx) error {
	company, err := h.companyService.GetCompany(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, company)
}

func (h *CompanyHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.companyService.GetBalance(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, balance)
}

func (h *CompanyHandler) AddFunds(c *fiber.Ctx) error {
	var req models.FundsAddRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	company, err := h.companyService.AddFunds(middlewares.CallerAddress(c), c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, company)
}

func (h *CompanyHandler) WithdrawFunds(c *fiber.Ctx) error {
	var req models.FundsWithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	company, err := h.companyService.WithdrawFunds(middlewares.CallerAddress(c), c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, company)
}
