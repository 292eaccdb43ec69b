//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pocketledger/backend/internal/domain/entity"
	"github.com/pocketledger/backend/internal/integration/adapters"
	"github.com/pocketledger/backend/internal/integration/persistence"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
	"github.com/pocketledger/backend/test/integration/mock"
)

const defaultPassword = "DefaultPass123!"

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.clock.SetCurrentTime(now)
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, defaultPassword, "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

// createUser inserts the user with the starter accounts a registration would create.
func (t *testContext) createUser(email, password, name string) error {
	user := entity.NewUser(email, name, hashPassword(password))
	if err := t.db.DbConn.Create(model.UserFromEntity(user)).Error; err != nil {
		return err
	}
	t.currentUserID = user.ID
	t.currentEmail = email

	for _, account := range entity.DefaultAccounts(user.ID) {
		if err := t.db.DbConn.Create(model.AccountFromEntity(account)).Error; err != nil {
			return err
		}
		t.accountIDs[account.Name] = account.ID
		if t.lastAccountID == uuid.Nil {
			t.lastAccountID = account.ID
		}
	}
	return nil
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

// theUserIsLoggedInWithValidTokens issues tokens the same way a login does.
func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no user created in this scenario")
	}
	tokens := adapters.NewTokenService(
		testJWTSecret,
		adapters.DefaultTokenDurations(),
		persistence.NewRefreshTokenRepository(t.db.DbConn),
	)
	pair, err := tokens.GenerateTokenPair(context.Background(), t.currentUserID, t.currentEmail, false)
	if err != nil {
		return fmt.Errorf("failed to generate tokens: %w", err)
	}
	t.accessToken = pair.AccessToken
	t.refreshToken = pair.RefreshToken
	return nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	if err := t.aUserExistsWithEmail(email); err != nil {
		return err
	}
	return t.theUserIsLoggedInWithValidTokens()
}

func (t *testContext) theUserHasAnAccount(name, accountType, balance string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return err
	}
	account := entity.NewAccount(t.currentUserID, name, amount, entity.AccountType(accountType), entity.NextAccountColor(len(t.accountIDs)))
	if err := t.db.DbConn.Create(model.AccountFromEntity(account)).Error; err != nil {
		return err
	}
	t.accountIDs[name] = account.ID
	t.lastAccountID = account.ID
	return nil
}

// theUserHasTheFollowingTransactions expects the columns account, category, amount, type, date
// and optionally note. An empty account column uses the first account of the user.
func (t *testContext) theUserHasTheFollowingTransactions(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transactions table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			if i < len(header) {
				values[header[i]] = cell.Value
			}
		}

		accountID := t.lastAccountID
		if name := values["account"]; name != "" {
			id, ok := t.accountIDs[name]
			if !ok {
				return fmt.Errorf("unknown account %q", name)
			}
			accountID = id
		}

		amount, err := decimal.NewFromString(values["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		date, err := time.Parse("2006-01-02", values["date"])
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}

		txn := entity.NewTransaction(
			t.currentUserID,
			accountID,
			values["category"],
			amount,
			entity.TransactionType(values["type"]),
			date,
			values["note"],
		)
		if err := t.db.DbConn.Create(model.TransactionFromEntity(txn)).Error; err != nil {
			return err
		}
		t.lastTransaction = txn.ID
	}
	return nil
}

func (t *testContext) theUserHasABudget(amount, categoryID string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	repo := persistence.NewBudgetRepository(t.db.DbConn)
	set, err := repo.FindByUser(context.Background(), t.currentUserID)
	if err != nil {
		return err
	}
	set.Upsert(entity.Budget{CategoryID: categoryID, Amount: value})
	set.UpdatedAt = time.Now().UTC()
	return repo.Replace(context.Background(), set)
}

func (t *testContext) theAdvisorReplies(reply string) error {
	t.advisor.script(reply, nil)
	return nil
}

func (t *testContext) theAdvisorIsFailing() error {
	t.advisor.script("", errors.New("advisor unreachable"))
	return nil
}

func (t *testContext) theEmailProviderAcceptsMessages() error {
	t.resend.SetResponse(-1, http.MethodPost, resendEmailPath, http.StatusOK, map[string]any{
		"id": uuid.NewString(),
	})
	return nil
}

func (t *testContext) theEmailProviderRespondsWithStatus(status int) error {
	t.resend.SetResponse(-1, http.MethodPost, resendEmailPath, status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    "invalid to address",
	})
	return nil
}

func (t *testContext) theAdviceCacheHasExpired() error {
	mock.FastForwardRedis(t.injector.Config.Redis.AdviceTTL + time.Second)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replaceTokenPlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replaceTokenPlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replaceTokenPlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replaceTokenPlaceholders(path), payload)
}

func (t *testContext) iSendRequestsToWithBody(count int, method, path string, body *godog.DocString) error {
	for i := 0; i < count; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theMonthlyDigestJobRuns() error {
	if !t.injector.DigestWorker.Run(context.Background()) {
		return errors.New("digest run was skipped")
	}
	return nil
}

func (t *testContext) theDemoUserIsSeeded() error {
	t.injector.Config.Demo.Enabled = true
	return t.injector.SeedDemoUser(context.Background())
}

func (t *testContext) replaceTokenPlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{account_id}}", t.lastAccountID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransaction.String())
	content = strings.ReplaceAll(content, "{{resource_id}}", t.lastResourceID.String())
	for name, id := range t.accountIDs {
		content = strings.ReplaceAll(content, "{{account:"+name+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
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
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     bodyBytes,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture issued tokens so later steps act as the same session
	if token, ok := responseBody["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := responseBody["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}
	if user, ok := responseBody["user"].(map[string]any); ok {
		if id, err := uuid.Parse(fmt.Sprint(user["id"])); err == nil {
			t.currentUserID = id
		}
	}

	// Capture the id of a created or updated resource
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastResourceID = id
			if _, isTransaction := responseBody["category_id"]; isTransaction {
				t.lastTransaction = id
			} else if _, isAccount := responseBody["balance"]; isAccount {
				t.lastAccountID = id
				if name, ok := responseBody["name"].(string); ok {
					t.accountIDs[name] = id
				}
			}
		}
	}

	return nil
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
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replaceTokenPlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	parent, key := body, field
	if i := strings.LastIndex(field, "."); i >= 0 {
		nested, ok := getFieldValue(body, field[:i]).(map[string]any)
		if !ok {
			return fmt.Errorf("field '%s' not found in response: %v", field[:i], body)
		}
		parent, key = nested, field[i+1:]
	}

	value, exists := parent[key]
	if !exists {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := t.response.headers.Get(header)
	if !strings.Contains(value, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, value)
	}
	return nil
}

func (t *testContext) theAdvisorShouldHaveBeenCalled(times int) error {
	if calls := t.advisor.callCount(); calls != times {
		return fmt.Errorf("expected %d advisor calls, got %d", times, calls)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	if received := t.resend.RequestCount(http.MethodPost, resendEmailPath); received != count {
		return fmt.Errorf("expected %d emails, got %d", count, received)
	}
	return nil
}

func (t *testContext) sentEmail(index int) (map[string]any, error) {
	body := t.resend.GetRequestBody(http.MethodPost, resendEmailPath, index-1)
	if body == nil {
		return nil, fmt.Errorf("email %d was not sent", index)
	}
	return body, nil
}

func (t *testContext) theEmailShouldBeSentTo(index int, recipient string) error {
	body, err := t.sentEmail(index)
	if err != nil {
		return err
	}
	to, _ := body["to"].([]any)
	for _, r := range to {
		addr, err := mail.ParseAddress(fmt.Sprint(r))
		if err == nil && strings.EqualFold(addr.Address, recipient) {
			return nil
		}
	}
	return fmt.Errorf("email %d expected recipient '%s', got %v", index, recipient, body["to"])
}

func (t *testContext) theEmailSubjectShouldContain(index int, expected string) error {
	body, err := t.sentEmail(index)
	if err != nil {
		return err
	}
	subject := fmt.Sprint(body["subject"])
	if !strings.Contains(subject, expected) {
		return fmt.Errorf("email %d subject expected to contain '%s', got '%s'", index, expected, subject)
	}
	return nil
}

func (t *testContext) theEmailShouldBeAuthorizedWith(index int, apiKey string) error {
	headers := t.resend.GetRequestHeaders(http.MethodPost, resendEmailPath, index-1)
	if headers == nil {
		return fmt.Errorf("email %d was not sent", index)
	}
	if got := headers["Authorization"]; got != "Bearer "+apiKey {
		return fmt.Errorf("email %d expected authorization for '%s', got '%s'", index, apiKey, got)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replaceTokenPlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	row, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(row).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	var field any = objectMap
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
