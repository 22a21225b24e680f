package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/middlewares"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
	authMiddleware  *middlewares.AuthMiddleware
}

func NewCustomerHandler(customerService *services.CustomerService, authMiddleware *middlewares.AuthMiddleware) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		authMiddleware:  authMiddleware,
	}
}

func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	companyGroup := router.Group("/companies/:id/customers")

	// Public read projections
	companyGroup.Get("/", h.GetCustomers)
	companyGroup.Get("/count", h.GetCustomerCount)

	// Company-privileged registration
	companyGroup.Post("/", h.authMiddleware.AuthCaller, h.AddCustomer)

	// Customer redemption count projection
	router.Get("/customers/:id", h.GetCustomer)
}

func (h *CustomerHandler) AddCustomer(c *fiber.Ctx) error {
	var req models.CustomerAddRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	customer, err := h.customerService.AddCustomer(middlewares.CallerAddress(c), c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, customer)
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.customerService.GetCustomer(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, customer)
}

func (h *CustomerHandler) GetCustomerCount(c *fiber.Ctx) error {
	count, err := h.customerService.GetCustomerCount(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, count)
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	pagination := models.PaginationRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}

	customers, err := h.customerService.GetCustomers(c.Params("id"), &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, customers)
}
