// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
	"github.com/finance-tracker/ledger/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds the state of one scenario.
type testContext struct {
	server      *httptest.Server
	client      *http.Client
	db          *mock.Db
	redis       *miniredis.Miniredis
	headers     map[string]string
	users       map[string]uuid.UUID
	currentUser string
	accessToken string
	values      map[string]string
	response    *response
}

type response struct {
	status int
	body   any
}

var (
	suiteDB     *mock.Db
	suiteRedis  *miniredis.Miniredis
	suiteServer *httptest.Server
	injector    *dependency.Injector
)

// InitializeTestSuite starts the API once over the shared in-memory store and Redis.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		suiteDB = mock.NewDb(map[string]any{
			"profiles":        &model.ProfileModel{},
			"categories":      &model.CategoryModel{},
			"fixed_templates": &model.FixedTemplateModel{},
			"fixed_instances": &model.FixedInstanceModel{},
			"transactions":    &model.TransactionModel{},
		})
		suiteRedis = mock.NewRedis()

		cfg := &config.Config{
			Server:    config.ServerConfig{Environment: "integration"},
			Database:  config.DatabaseConfig{QueryTimeout: 5 * time.Second},
			Redis:     config.RedisConfig{URL: mock.RedisURL(suiteRedis)},
			JWT:       config.JWTConfig{Secret: testJWTSecret},
			RateLimit: config.RateLimitConfig{Enabled: true, Requests: 100000, Window: time.Minute},
		}

		var err error
		injector, err = dependency.NewInjector(cfg, suiteDB.Database)
		if err != nil {
			panic("failed to wire the API: " + err.Error())
		}
		suiteServer = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})

	ctx.AfterSuite(func() {
		if suiteServer != nil {
			suiteServer.Close()
		}
		if injector != nil {
			_ = injector.Close()
		}
		if suiteDB != nil {
			_ = suiteDB.Database.Close()
		}
		if suiteRedis != nil {
			suiteRedis.Close()
		}
	})
}

// InitializeScenario registers every step and resets the stores before each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerStoreSteps(ctx, test)
}

func (t *testContext) before() error {
	t.server = suiteServer
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.db = suiteDB
	t.redis = suiteRedis
	t.headers = make(map[string]string)
	t.users = make(map[string]uuid.UUID)
	t.currentUser = ""
	t.accessToken = ""
	t.values = make(map[string]string)
	t.response = nil

	mock.ClearRedis(t.redis)
	return t.db.ClearDB()
}
