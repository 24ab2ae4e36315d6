// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/fixed"
	"github.com/finance-tracker/ledger/internal/application/usecase/profile"
	"github.com/finance-tracker/ledger/internal/application/usecase/summary"
	"github.com/finance-tracker/ledger/internal/application/usecase/template"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/infra/metrics"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Database *db.Database
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Router   *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database) (*Injector, error) {
	gdb, timeout := database.DB(), database.QueryTimeout()

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(gdb, timeout)
	profileRepo := persistence.NewProfileRepository(gdb, timeout)
	templateRepo := persistence.NewFixedTemplateRepository(gdb, timeout)
	instanceRepo := persistence.NewFixedInstanceRepository(gdb, timeout)
	transactionRepo := persistence.NewTransactionRepository(gdb, timeout)

	// Create adapters/services
	ledgerMetrics := metrics.New()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// Create fixed obligation use cases
	ensureMonthUseCase := fixed.NewEnsureMonthUseCase(templateRepo, instanceRepo, ledgerMetrics)
	listInstancesUseCase := fixed.NewListInstancesUseCase(instanceRepo)
	setPaidUseCase := fixed.NewSetPaidUseCase(instanceRepo, ledgerMetrics)
	deleteInstanceUseCase := fixed.NewDeleteInstanceUseCase(instanceRepo, ledgerMetrics)

	// Create template use cases
	createTemplateUseCase := template.NewCreateTemplateUseCase(templateRepo, categoryRepo)
	listTemplatesUseCase := template.NewListTemplatesUseCase(templateRepo)
	updateTemplateUseCase := template.NewUpdateTemplateUseCase(templateRepo, categoryRepo)
	deactivateTemplateUseCase := template.NewDeactivateTemplateUseCase(templateRepo)

	// Create aggregation use cases
	getMonthlySummaryUseCase := summary.NewGetMonthlySummaryUseCase(profileRepo, transactionRepo, instanceRepo)
	getMonthlyAnalyticsUseCase := analytics.NewGetMonthlyAnalyticsUseCase(transactionRepo, categoryRepo)

	// Create transaction, profile and category use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(profileRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(database.HealthCheck),
		Fixed: controller.NewFixedController(
			ensureMonthUseCase,
			listInstancesUseCase,
			setPaidUseCase,
			deleteInstanceUseCase,
		),
		Template: controller.NewTemplateController(
			createTemplateUseCase,
			listTemplatesUseCase,
			updateTemplateUseCase,
			deactivateTemplateUseCase,
		),
		Summary: controller.NewSummaryController(getMonthlySummaryUseCase, getMonthlyAnalyticsUseCase),
		Transaction: controller.NewTransactionController(
			createTransactionUseCase,
			listTransactionsUseCase,
			deleteTransactionUseCase,
		),
		Profile:  controller.NewProfileController(getProfileUseCase, updateProfileUseCase),
		Category: controller.NewCategoryController(listCategoriesUseCase),
	}

	// Create middleware
	injector := &Injector{
		Config:   cfg,
		Database: database,
		Metrics:  ledgerMetrics,
	}

	apiRateLimiter, err := injector.newRateLimiter()
	if err != nil {
		return nil, err
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	injector.Router = router.NewRouter(
		controllers,
		authMiddleware,
		apiRateLimiter,
		ledgerMetrics,
		cfg.Server.CORSAllowOrigins,
	)

	return injector, nil
}

// newRateLimiter picks the Redis limiter when REDIS_URL is set and the
// in-process one otherwise.
func (i *Injector) newRateLimiter() (*middleware.RateLimiter, error) {
	rl := i.Config.RateLimit
	if !rl.Enabled {
		return nil, nil
	}

	requests, window := rl.Requests, rl.Window
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	if i.Config.Server.Environment == "e2e" || i.Config.Server.Environment == "test" {
		requests, window = 1000, 1*time.Minute
	}

	if i.Config.Redis.URL == "" {
		return middleware.NewRateLimiterWithConfig(requests, window), nil
	}

	opts, err := redis.ParseURL(i.Config.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	i.Redis = redis.NewClient(opts)
	slog.Info("Rate limiter backed by Redis", "addr", opts.Addr)

	return middleware.NewRedisRateLimiter(i.Redis, requests, window), nil
}

// Close releases the connections owned by the injector. The database is
// closed by its creator.
func (i *Injector) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	return nil
}
