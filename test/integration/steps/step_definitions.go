package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^I am authenticated as "([^"]*)"$`, t.iAmAuthenticatedAs)
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
	ctx.Given(`^a global category "([^"]*)" exists$`, t.aGlobalCategoryExists)
	ctx.Given(`^a category "([^"]*)" owned by "([^"]*)" exists$`, t.aCategoryOwnedByExists)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) concurrent "([^"]*)" requests to "([^"]*)"$`, t.iSendConcurrentRequestsTo)
	ctx.When(`^I create (\d+) "([^"]*)" transactions of "([^"]*)" on "([^"]*)"$`, t.iCreateTransactions)
	ctx.When(`^I remember the response field "([^"]*)" as "([^"]*)"$`, t.iRememberTheResponseFieldAs)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, t.theResponseFieldShouldBeNull)
	ctx.Then(`^the response should have (\d+) items$`, t.theResponseShouldHaveItems)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, t.theResponseFieldShouldHaveItems)
	ctx.Then(`^paging through "([^"]*)" should return (\d+) distinct items in (\d+) pages$`, t.pagingThroughShouldReturn)
}

func registerStoreSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the rate limit counter of "([^"]*)" should be (\d+)$`, t.theRateLimitCounterShouldBe)
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// userID returns the stable id assigned to a scenario alias.
func (t *testContext) userID(alias string) uuid.UUID {
	id, ok := t.users[alias]
	if !ok {
		id = uuid.New()
		t.users[alias] = id
	}
	return id
}

func (t *testContext) iAmAuthenticatedAs(alias string) error {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   t.userID(alias).String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testJWTSecret))
	if err != nil {
		return err
	}
	t.currentUser = alias
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) aGlobalCategoryExists(name string) error {
	return t.seedCategory(nil, name)
}

func (t *testContext) aCategoryOwnedByExists(name, alias string) error {
	owner := t.userID(alias)
	return t.seedCategory(&owner, name)
}

func (t *testContext) seedCategory(owner *uuid.UUID, name string) error {
	category := &model.CategoryModel{Name: name, UserID: owner, IsActive: true, CreatedAt: time.Now().UTC()}
	if err := t.db.Conn().Create(category).Error; err != nil {
		return err
	}
	t.values["category:"+name] = strconv.FormatInt(category.ID, 10)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSendConcurrentRequestsTo(count int, method, path string) error {
	path = t.replacePlaceholders(path)

	var wg sync.WaitGroup
	errs := make([]error, count)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _, err := t.send(method, path, nil)
			if err == nil && status != http.StatusOK {
				err = fmt.Errorf("request %d returned %d", i, status)
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (t *testContext) iCreateTransactions(count int, txType, amount, date string) error {
	for i := 0; i < count; i++ {
		payload := fmt.Sprintf(`{"type": %q, "amount": %s, "occurred_at": %q, "description": "bulk %d"}`, txType, amount, date, i)
		status, body, err := t.send(http.MethodPost, "/api/v1/transactions", []byte(payload))
		if err != nil {
			return err
		}
		if status != http.StatusCreated {
			return fmt.Errorf("transaction %d returned %d: %v", i, status, body)
		}
	}
	return nil
}

func (t *testContext) iRememberTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.values[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with remembered values.
func (t *testContext) replacePlaceholders(content string) string {
	for name, value := range t.values {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	status, body, err := t.send(method, path, payload)
	if err != nil {
		return err
	}
	t.response = &response{status: status, body: body}
	return nil
}

func (t *testContext) send(method, path string, payload []byte) (int, any, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	var body any = string(bodyBytes)
	if len(bytes.TrimSpace(bodyBytes)) > 0 {
		decoder := json.NewDecoder(bytes.NewReader(bodyBytes))
		decoder.UseNumber()
		var decoded any
		if err := decoder.Decode(&decoded); err == nil {
			body = decoded
		}
	}
	return resp.StatusCode, body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	switch t.response.body.(type) {
	case map[string]any, []any:
		return nil
	}
	return fmt.Errorf("response is not JSON: %v", t.response.body)
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	parent, key := t.response.body, field
	if i := strings.LastIndex(field, "."); i >= 0 {
		parent, key = getFieldValue(t.response.body, field[:i]), field[i+1:]
	}
	body, ok := parent.(map[string]any)
	if !ok {
		return fmt.Errorf("field '%s' has no JSON object parent in response: %v", field, t.response.body)
	}
	value, exists := body[key]
	if !exists {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseShouldHaveItems(count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	return hasItems(t.response.body, count)
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	return hasItems(getFieldValue(t.response.body, field), count)
}

func hasItems(value any, count int) error {
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected a JSON array, got %v", value)
	}
	if len(items) != count {
		return fmt.Errorf("expected %d items, got %d", count, len(items))
	}
	return nil
}

// pagingThroughShouldReturn follows next_before_id until it is null.
func (t *testContext) pagingThroughShouldReturn(path string, total, pages int) error {
	seen := make(map[string]bool)
	cursor := ""
	for page := 1; ; page++ {
		if page > pages {
			return fmt.Errorf("more than %d pages", pages)
		}

		url := path
		if cursor != "" {
			separator := "?"
			if strings.Contains(url, "?") {
				separator = "&"
			}
			url += separator + "before_id=" + cursor
		}

		status, body, err := t.send(http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("page %d returned %d: %v", page, status, body)
		}

		items, _ := getFieldValue(body, "items").([]any)
		for _, item := range items {
			id := fmt.Sprintf("%v", getFieldValue(item, "id"))
			if seen[id] {
				return fmt.Errorf("id %s returned twice", id)
			}
			seen[id] = true
		}

		next := getFieldValue(body, "next_before_id")
		if next == nil {
			if page != pages {
				return fmt.Errorf("expected %d pages, got %d", pages, page)
			}
			break
		}
		cursor = fmt.Sprintf("%v", next)
	}

	if len(seen) != total {
		return fmt.Errorf("expected %d distinct items, got %d", total, len(seen))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

// countRows counts soft deleted rows too.
func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.Conn().Unscoped()
	for key, value := range criteria {
		switch key {
		case "deleted":
			if value == true {
				query = query.Where("deleted_at IS NOT NULL")
			} else {
				query = query.Where("deleted_at IS NULL")
			}
		default:
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}
	}

	if err := query.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theRateLimitCounterShouldBe(alias string, expected int) error {
	key := "ledger:ratelimit:user:" + t.userID(alias).String()
	value, err := t.redis.Get(key)
	if err != nil {
		return fmt.Errorf("no rate limit counter for %s: %w", alias, err)
	}
	if value != strconv.Itoa(expected) {
		return fmt.Errorf("rate limit counter expected %d, got %s", expected, value)
	}
	return nil
}

// getFieldValue walks a dot separated path. Numeric segments index arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	current := object
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		switch v := current.(type) {
		case map[string]any:
			current = v[segment]
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(v) {
				return nil
			}
			current = v[index]
		default:
			return nil
		}
	}
	return current
}
