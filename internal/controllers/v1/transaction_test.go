package v1_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/smyja/flite/internal/controllers/v1"
	"github.com/smyja/flite/internal/models"
	"github.com/smyja/flite/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionCreate() {
	user, headers := suite.registerUser()
	other, _ := suite.registerUser()
	category := suite.createTestBudgetCategory(headers, map[string]any{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", map[string]any{
		"category":    category.ID,
		"amount":      "-12.5",
		"description": "Weekly groceries",
		"date":        "2024-03-01T12:00:00+02:00",
		"owner":       other.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var body map[string]any
	test.DecodeResponse(suite.T(), &recorder, &body)
	suite.Assert().NotContains(body, "owner")
	suite.Assert().Equal(category.ID.String(), body["category"])
	suite.Assert().Equal("-12.50", body["amount"])
	suite.Assert().Equal("Weekly groceries", body["description"])
	suite.Assert().Equal("2024-03-01T10:00:00Z", body["date"])

	var transaction models.Transaction
	suite.Require().Nil(models.DB.First(&transaction, "id = ?", body["id"]).Error)
	suite.Assert().Equal(user.ID, transaction.OwnerID)
}

func (suite *TestSuiteStandard) TestTransactionCreateDefaultDate() {
	_, headers := suite.registerUser()

	before := time.Now().Add(-time.Second)
	transaction := suite.createTestTransaction(headers, map[string]any{})

	suite.Assert().True(transaction.Date.After(before), "Date %s is not after %s", transaction.Date, before)
	suite.Assert().Equal("", transaction.Description)
	suite.Assert().Equal("10.00", transaction.Amount)
}

func (suite *TestSuiteStandard) TestTransactionCreateFails() {
	_, headers := suite.registerUser()
	category := suite.createTestBudgetCategory(headers, map[string]any{})

	tests := []struct {
		name     string
		body     map[string]any
		expected map[string][]string
	}{
		{"Missing category", map[string]any{"amount": "1"}, map[string][]string{"category": {"This field is required."}}},
		{"Missing amount", map[string]any{"category": category.ID}, map[string][]string{"amount": {"This field is required."}}},
		{"Invalid category", map[string]any{"category": "groceries", "amount": "1"}, map[string][]string{"category": {"Must be a valid UUID."}}},
		{"Invalid amount", map[string]any{"category": category.ID, "amount": "ten"}, map[string][]string{"amount": {"A valid number is required."}}},
		{"Too many places", map[string]any{"category": category.ID, "amount": "0.125"}, map[string][]string{"amount": {"Ensure that there are no more than 2 decimal places."}}},
		{"Too many whole digits", map[string]any{"category": category.ID, "amount": "-123456789012"}, map[string][]string{"amount": {"Ensure that there are no more than 10 digits before the decimal point."}}},
		{"Tiny exponent", map[string]any{"category": category.ID, "amount": "1e-20000"}, map[string][]string{"amount": {"A valid number is required."}}},
		{"Huge exponent", map[string]any{"category": category.ID, "amount": json.Number("1e2000000")}, map[string][]string{"amount": {"A valid number is required."}}},
		{"Invalid amount and missing category", map[string]any{"amount": "ten"}, map[string][]string{"category": {"This field is required."}, "amount": {"A valid number is required."}}},
		{"Invalid date", map[string]any{"category": category.ID, "amount": "1", "date": "01.03.2024"}, map[string][]string{"date": {"Datetime has wrong format. Use RFC 3339, e.g. 2006-01-02T15:04:05Z."}}},
		{"Unknown category", map[string]any{"category": "4e9c0d1a-2b3c-4d5e-8f90-a1b2c3d4e5f6", "amount": "1"}, map[string][]string{"category": {`Invalid pk "4e9c0d1a-2b3c-4d5e-8f90-a1b2c3d4e5f6" - object does not exist.`}}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body, headers)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var errors map[string][]string
			test.DecodeResponse(t, &recorder, &errors)
			assert.Equal(t, tt.expected, errors)
		})
	}

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestTransactionCreateForeignCategory() {
	_, headers := suite.registerUser()
	_, otherHeaders := suite.registerUser()
	foreign := suite.createTestBudgetCategory(otherHeaders, map[string]any{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", map[string]any{
		"category": foreign.ID,
		"amount":   "5.00",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().JSONEq(fmt.Sprintf(`{"category": ["Invalid pk \"%s\" - object does not exist."]}`, foreign.ID), recorder.Body.String())
}

func (suite *TestSuiteStandard) TestTransactionList() {
	_, headers := suite.registerUser()
	_, otherHeaders := suite.registerUser()

	groceries := suite.createTestBudgetCategory(headers, map[string]any{})
	rent := suite.createTestBudgetCategory(headers, map[string]any{})

	first := suite.createTestTransaction(headers, map[string]any{"category": groceries.ID})
	second := suite.createTestTransaction(headers, map[string]any{"category": rent.ID})
	third := suite.createTestTransaction(headers, map[string]any{"category": groceries.ID})
	suite.createTestTransaction(otherHeaders, map[string]any{})

	tests := []struct {
		name     string
		query    string
		expected []uuid.UUID
	}{
		{"All", "", []uuid.UUID{first.ID, second.ID, third.ID}},
		{"Category", fmt.Sprintf("category=%s", groceries.ID), []uuid.UUID{first.ID, third.ID}},
		{"Other category", fmt.Sprintf("category=%s", rent.ID), []uuid.UUID{second.ID}},
		{"Unknown category", fmt.Sprintf("category=%s", uuid.New()), []uuid.UUID{}},
		{"Limit", "limit=1", []uuid.UUID{first.ID}},
		{"Offset", "offset=1&limit=1", []uuid.UUID{second.ID}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "", headers)
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var transactions []v1.Transaction
			test.DecodeResponse(t, &recorder, &transactions)

			ids := make([]uuid.UUID, 0, len(transactions))
			for _, transaction := range transactions {
				ids = append(ids, transaction.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionListInvalidCategory() {
	_, headers := suite.registerUser()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?category=groceries", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionGet() {
	_, headers := suite.registerUser()
	transaction := suite.createTestTransaction(headers, map[string]any{"amount": "20", "description": "Cinema"})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var fetched v1.Transaction
	test.DecodeResponse(suite.T(), &recorder, &fetched)
	suite.Assert().Equal(transaction.ID, fetched.ID)
	suite.Assert().Equal("20.00", fetched.Amount)
	suite.Assert().Equal("Cinema", fetched.Description)
	suite.Assert().True(transaction.Date.Equal(fetched.Date))
}

func (suite *TestSuiteStandard) TestTransactionNotAccessible() {
	_, headers := suite.registerUser()
	_, otherHeaders := suite.registerUser()
	transaction := suite.createTestTransaction(otherHeaders, map[string]any{})
	url := fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
		recorder := test.Request(suite.T(), method, url, `{"amount": "1000"}`, headers)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
	}

	recorder := test.Request(suite.T(), http.MethodGet, url, "", otherHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var fetched v1.Transaction
	test.DecodeResponse(suite.T(), &recorder, &fetched)
	suite.Assert().Equal("10.00", fetched.Amount)
}

func (suite *TestSuiteStandard) TestTransactionUpdate() {
	user, headers := suite.registerUser()
	other, _ := suite.registerUser()
	groceries := suite.createTestBudgetCategory(headers, map[string]any{})
	rent := suite.createTestBudgetCategory(headers, map[string]any{})
	transaction := suite.createTestTransaction(headers, map[string]any{
		"category":    groceries.ID,
		"amount":      "10.00",
		"description": "Bread",
		"date":        "2024-03-01T10:00:00Z",
	})
	url := fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID)

	recorder := test.Request(suite.T(), http.MethodPatch, url, map[string]any{"amount": "12.99"}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.Transaction
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal("12.99", updated.Amount)
	suite.Assert().Equal("Bread", updated.Description)
	suite.Assert().Equal(groceries.ID, updated.CategoryID)
	suite.Assert().Equal("2024-03-01T10:00:00Z", updated.Date.Format(time.RFC3339))

	recorder = test.Request(suite.T(), http.MethodPut, url, map[string]any{
		"category": rent.ID,
		"owner":    other.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal(rent.ID, updated.CategoryID)
	suite.Assert().Equal("12.99", updated.Amount)

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, "id = ?", transaction.ID).Error)
	suite.Assert().Equal(user.ID, stored.OwnerID)
	suite.Assert().Equal(rent.ID, stored.CategoryID)
	suite.Assert().Equal("12.99", stored.Amount.StringFixed(2))
}

func (suite *TestSuiteStandard) TestTransactionUpdateResetDate() {
	_, headers := suite.registerUser()
	transaction := suite.createTestTransaction(headers, map[string]any{"date": "2020-01-01T00:00:00Z"})

	before := time.Now().Add(-time.Second)
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), `{"date": null}`, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.Transaction
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().True(updated.Date.After(before), "Date %s is not after %s", updated.Date, before)
}

func (suite *TestSuiteStandard) TestTransactionUpdateForeignCategory() {
	_, headers := suite.registerUser()
	_, otherHeaders := suite.registerUser()
	transaction := suite.createTestTransaction(headers, map[string]any{})
	foreign := suite.createTestBudgetCategory(otherHeaders, map[string]any{})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), map[string]any{
		"category": foreign.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().JSONEq(fmt.Sprintf(`{"category": ["Invalid pk \"%s\" - object does not exist."]}`, foreign.ID), recorder.Body.String())

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, "id = ?", transaction.ID).Error)
	suite.Assert().Equal(transaction.CategoryID, stored.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	_, headers := suite.registerUser()
	transaction := suite.createTestTransaction(headers, map[string]any{})
	url := fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID)

	recorder := test.Request(suite.T(), http.MethodDelete, url, "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodDelete, url, "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// The category is kept
	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budget-categories/%s", transaction.CategoryID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestTransactionOptions() {
	_, headers := suite.registerUser()
	transaction := suite.createTestTransaction(headers, map[string]any{})

	tests := []struct {
		path  string
		allow string
	}{
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/transactions/export", "OPTIONS, GET"},
		{fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), "OPTIONS, GET, PUT, PATCH, DELETE"},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodOptions, tt.path, "", headers)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
		suite.Assert().Equal(tt.allow, recorder.Header().Get("allow"), tt.path)
	}
}

func (suite *TestSuiteStandard) TestTransactionDatabaseError() {
	_, headers := suite.registerUser()
	transaction := suite.createTestTransaction(headers, map[string]any{})
	detail := fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID)
	create := fmt.Sprintf(`{"category": "%s", "amount": "5.00"}`, transaction.CategoryID)

	tests := []struct {
		name   string
		method string
		url    string
		body   string
	}{
		{"List", http.MethodGet, "http://example.com/v1/transactions", ""},
		{"Create", http.MethodPost, "http://example.com/v1/transactions", create},
		{"Get", http.MethodGet, detail, ""},
		{"Update", http.MethodPatch, detail, `{"amount": "7.00"}`},
		{"Delete", http.MethodDelete, detail, ""},
		{"Export", http.MethodGet, "http://example.com/v1/transactions/export?format=csv", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.reconnectDB()

			recorder := suite.requestWithClosedDB(tt.method, tt.url, tt.body, headers)
			test.AssertHTTPStatus(t, recorder, http.StatusInternalServerError)
			assert.JSONEq(t, `{"error": "an error occurred on the server during your request"}`, recorder.Body.String())
		})
	}
}
