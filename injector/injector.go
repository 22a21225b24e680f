//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/deliveries"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/middlewares"
	"github.com/telescolawrence/coke-crypto-rewards/internal/app/services"
	"github.com/telescolawrence/coke-crypto-rewards/internal/infrastructures"
)

// Application is the assembled ledger service.
type Application struct {
	Config              *infrastructures.AppConfig
	HealthHandler       *deliveries.HealthHandler
	CompanyHandler      *deliveries.CompanyHandler
	VoucherHandler      *deliveries.VoucherHandler
	CustomerHandler     *deliveries.CustomerHandler
	RedemptionHandler   *deliveries.RedemptionHandler
	EventHandler        *deliveries.EventHandler
	AccessKeyHandler    *deliveries.AccessKeyHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	ledgerGroup := router.Group("")
	ledgerGroup.Use(app.RateLimitMiddleware.LimitByCaller(middlewares.LedgerAPILimit))

	app.HealthHandler.RegisterRoutes(router)
	app.CompanyHandler.RegisterRoutes(ledgerGroup)
	app.VoucherHandler.RegisterRoutes(ledgerGroup)
	app.CustomerHandler.RegisterRoutes(ledgerGroup)
	app.RedemptionHandler.RegisterRoutes(ledgerGroup)
	app.EventHandler.RegisterRoutes(ledgerGroup)
	app.AccessKeyHandler.RegisterRoutes(router)
}

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.LoadConfig,
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("rewards"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewEventService,
	wire.Bind(new(services.Custody), new(*services.LedgerCustody)),
	services.NewLedgerCustody,
	services.NewCompanyService,
	services.NewVoucherService,
	services.NewCustomerService,
	services.NewRedemptionService,
	services.NewAccessKeyService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewCompanyHandler,
	deliveries.NewVoucherHandler,
	deliveries.NewCustomerHandler,
	deliveries.NewRedemptionHandler,
	deliveries.NewEventHandler,
	deliveries.NewAccessKeyHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
