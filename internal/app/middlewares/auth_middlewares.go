package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/pkg"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
)

// CallerAddressKey is the request-local slot holding the authenticated
// caller address. Handlers read it; ledger services only ever receive the
// resolved address.
const CallerAddressKey = "caller_address"

type AuthMiddleware struct {
	accessKeyService *services.AccessKeyService
}

func NewAuthMiddleware(accessKeyService *services.AccessKeyService) *AuthMiddleware {
	return &AuthMiddleware{accessKeyService: accessKeyService}
}

// AuthCaller resolves the bearer access key to a caller address.
func (m *AuthMiddleware) AuthCaller(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.WebResponse[any]{
			Success: false,
			Message: "Unauthorized",
		})
	}

	token = strings.Replace(token, "Bearer ", "", 1)

	address, err := m.accessKeyService.ResolveAddress(token)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Locals(CallerAddressKey, address)

	return c.Next()
}

// CallerAddress reads the resolved caller address from request locals.
func CallerAddress(c *fiber.Ctx) string {
	if address, ok := c.Locals(CallerAddressKey).(string); ok {
		return address
	}
	return ""
}
