package dependency

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

const jwtSecret = "injector-test-secret"

type APISuite struct {
	suite.Suite
	redis    *miniredis.Miniredis
	database *db.Database
	injector *Injector
	engine   *gin.Engine
	userID   uuid.UUID
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.redis = miniredis.RunT(s.T())

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{
			Driver:       db.DriverSQLite,
			URL:          ":memory:",
			QueryTimeout: 5 * time.Second,
		},
		Redis:     config.RedisConfig{URL: "redis://" + s.redis.Addr()},
		JWT:       config.JWTConfig{Secret: jwtSecret},
		RateLimit: config.RateLimitConfig{Enabled: true, Requests: 5, Window: time.Minute},
	}

	database, err := db.NewConnection(&cfg.Database)
	s.Require().NoError(err)
	s.Require().NoError(database.AutoMigrate(model.All()...))
	s.database = database

	injector, err := NewInjector(cfg, database)
	s.Require().NoError(err)
	s.Require().NotNil(injector.Redis)
	s.injector = injector
	s.engine = injector.Router.Setup(cfg.Server.Environment)
	s.userID = uuid.New()
}

func (s *APISuite) TearDownTest() {
	s.NoError(s.injector.Close())
	s.NoError(s.database.Close())
}

func (s *APISuite) token(userID uuid.UUID) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(jwtSecret))
	s.Require().NoError(err)
	return token
}

func (s *APISuite) doAs(userID uuid.UUID, method, path string, body interface{}) (int, map[string]interface{}, []interface{}) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+s.token(userID))
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	raw := strings.TrimSpace(rec.Body.String())
	if raw == "" {
		return rec.Code, nil, nil
	}
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var decoded interface{}
	s.Require().NoError(decoder.Decode(&decoded), raw)

	switch v := decoded.(type) {
	case map[string]interface{}:
		return rec.Code, v, nil
	case []interface{}:
		return rec.Code, nil, v
	}
	return rec.Code, nil, nil
}

func (s *APISuite) do(method, path string, body interface{}) (int, map[string]interface{}, []interface{}) {
	return s.doAs(s.userID, method, path, body)
}

func (s *APISuite) TestHealthAndMetrics() {
	code, body, _ := s.doAs(uuid.Nil, http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, code)
	s.Equal("connected", body["database"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ledger_requests_total")
}

func (s *APISuite) TestRequiresBearerToken() {
	code, body, _ := s.doAs(uuid.Nil, http.MethodGet, "/api/v1/fixed?month=2024-05-01", nil)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("AUTH-030003", body["code"])
}

func (s *APISuite) TestMonthValidation() {
	for _, query := range []string{"", "?month=2024-05-15", "?month=2024-05", "?month=may"} {
		code, body, _ := s.do(http.MethodGet, "/api/v1/summary"+query, nil)
		s.Equal(http.StatusBadRequest, code, query)
		s.Equal("LDG-010001", body["code"], query)
	}
}

func (s *APISuite) TestMonthlyFlow() {
	code, profile, _ := s.do(http.MethodPatch, "/api/v1/profiles/me", map[string]interface{}{
		"base_salary": 1000,
		"saving_rate": "0.10",
	})
	s.Require().Equal(http.StatusOK, code)
	s.Equal(json.Number("1000.00"), profile["base_salary"])

	code, tpl, _ := s.do(http.MethodPost, "/api/v1/templates", map[string]interface{}{
		"name":    "Rent",
		"amount":  300,
		"due_day": 5,
	})
	s.Require().Equal(http.StatusCreated, code)
	s.Equal("Rent", tpl["name"])

	code, ensured, _ := s.do(http.MethodPost, "/api/v1/fixed/ensure?month=2024-05-01", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(true, ensured["ensured"])
	s.Equal(json.Number("1"), ensured["created"])

	code, ensured, _ = s.do(http.MethodPost, "/api/v1/fixed/ensure?month=2024-05-01", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(json.Number("0"), ensured["created"])
	s.Equal(json.Number("1"), ensured["skipped"])

	code, _, instances := s.do(http.MethodGet, "/api/v1/fixed?month=2024-05-01", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Require().Len(instances, 1)
	instance := instances[0].(map[string]interface{})
	s.Equal("Rent", instance["name_snapshot"])
	s.Equal(json.Number("300.00"), instance["amount_snapshot"])
	s.Equal(false, instance["is_paid"])
	instanceID := string(instance["id"].(json.Number))

	code, paid, _ := s.do(http.MethodPost, "/api/v1/fixed/"+instanceID+"/pay", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(true, paid["is_paid"])

	code, _, _ = s.do(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
		"type": "income", "amount": 200, "occurred_at": "2024-05-03",
	})
	s.Require().Equal(http.StatusCreated, code)
	code, _, _ = s.do(http.MethodPost, "/api/v1/expenses", map[string]interface{}{
		"amount": "150", "category_name": "Food", "occurred_at": "2024-05-03",
	})
	s.Require().Equal(http.StatusCreated, code)

	code, summary, _ := s.do(http.MethodGet, "/api/v1/summary?month=2024-05-01", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(json.Number("1000.00"), summary["base_salary"])
	s.Equal(json.Number("200.00"), summary["extra_income"])
	s.Equal(json.Number("150.00"), summary["variable_expense"])
	s.Equal(json.Number("300.00"), summary["fixed_paid"])
	s.Equal(json.Number("120.00"), summary["saving_target"])
	s.Equal(json.Number("630.00"), summary["remaining"])

	code, analytics, _ := s.do(http.MethodGet, "/api/v1/analytics/monthly?month=2024-05-01", nil)
	s.Require().Equal(http.StatusOK, code)
	dailyNet := analytics["dailyNet"].([]interface{})
	s.Require().Len(dailyNet, 1)
	s.Equal("2024-05-03", dailyNet[0].(map[string]interface{})["day"])
	s.Equal(json.Number("50.00"), dailyNet[0].(map[string]interface{})["net"])
	s.Len(analytics["byCategory"], 2)

	code, _, _ = s.do(http.MethodDelete, "/api/v1/fixed/"+instanceID, nil)
	s.Equal(http.StatusNoContent, code)
	code, ensured, _ = s.do(http.MethodPost, "/api/v1/fixed/ensure?month=2024-05-01", nil)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(json.Number("0"), ensured["created"])
	code, _, instances = s.do(http.MethodGet, "/api/v1/fixed?month=2024-05-01", nil)
	s.Equal(http.StatusOK, code)
	s.Empty(instances)
}

func (s *APISuite) TestOwnershipIsolation() {
	code, _, _ := s.do(http.MethodPost, "/api/v1/templates", map[string]interface{}{"name": "Gym", "amount": 40})
	s.Require().Equal(http.StatusCreated, code)
	code, _, _ = s.do(http.MethodPost, "/api/v1/fixed/ensure?month=2024-06-01", nil)
	s.Require().Equal(http.StatusOK, code)
	_, _, instances := s.do(http.MethodGet, "/api/v1/fixed?month=2024-06-01", nil)
	s.Require().Len(instances, 1)
	instanceID := string(instances[0].(map[string]interface{})["id"].(json.Number))

	intruder := uuid.New()
	code, body, _ := s.doAs(intruder, http.MethodPost, "/api/v1/fixed/"+instanceID+"/pay", nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("FIX-010007", body["code"])

	code, missing, _ := s.do(http.MethodPost, "/api/v1/fixed/999999/pay", nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal(body, missing)

	code, body, _ = s.do(http.MethodPost, "/api/v1/fixed/abc/pay", nil)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("FIX-010008", body["code"])

	_, _, instances = s.do(http.MethodGet, "/api/v1/fixed?month=2024-06-01", nil)
	s.Equal(false, instances[0].(map[string]interface{})["is_paid"])
}

func (s *APISuite) TestTemplateValidationCodes() {
	code, body, _ := s.do(http.MethodPost, "/api/v1/templates", map[string]interface{}{"name": "Rent", "amount": 0})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("FIX-010002", body["code"])

	code, body, _ = s.do(http.MethodPost, "/api/v1/templates", map[string]interface{}{"name": "Rent", "amount": "0.004"})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("FIX-010002", body["code"])

	code, body, _ = s.do(http.MethodPost, "/api/v1/templates", map[string]interface{}{"name": "Rent", "amount": 10, "due_day": 40})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("FIX-010003", body["code"])

	code, body, _ = s.do(http.MethodDelete, "/api/v1/templates/12345", nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("FIX-010006", body["code"])
}

func (s *APISuite) TestTemplatePatchClearsDueDay() {
	code, body, _ := s.do(http.MethodPost, "/api/v1/templates", map[string]interface{}{"name": "Gym", "amount": "45.00", "due_day": 5})
	s.Require().Equal(http.StatusCreated, code)
	s.Equal(json.Number("5"), body["due_day"])
	path := "/api/v1/templates/" + string(body["id"].(json.Number))

	code, body, _ = s.do(http.MethodPatch, path, map[string]interface{}{"name": "Gym"})
	s.Require().Equal(http.StatusOK, code)
	s.Equal(json.Number("5"), body["due_day"])

	code, body, _ = s.do(http.MethodPatch, path, map[string]interface{}{"due_day": nil})
	s.Require().Equal(http.StatusOK, code)
	s.Nil(body["due_day"])
	s.Equal(json.Number("45.00"), body["amount"])
}

func (s *APISuite) TestRateLimitCountersLiveInRedis() {
	code, _, _ := s.do(http.MethodGet, "/api/v1/categories", nil)
	s.Require().Equal(http.StatusOK, code)

	keys := s.redis.Keys()
	s.Require().Len(keys, 1)
	assert.True(s.T(), strings.HasSuffix(keys[0], "user:"+s.userID.String()))
}

func TestNewInjector_RejectsBadRedisURL(t *testing.T) {
	database, err := db.NewConnection(&config.DatabaseConfig{Driver: db.DriverSQLite, URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, err = NewInjector(&config.Config{
		Redis:     config.RedisConfig{URL: "not-a-url"},
		RateLimit: config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Minute},
	}, database)
	require.Error(t, err)
}
