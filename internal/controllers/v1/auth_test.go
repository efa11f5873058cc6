package v1_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	v1 "github.com/smyja/flite/internal/controllers/v1"
	"github.com/smyja/flite/internal/models"
	"github.com/smyja/flite/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRegister() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"username": "ada.lovelace@example.com",
		"password": testPassword,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var user v1.User
	test.DecodeResponse(suite.T(), &recorder, &user)
	suite.Assert().Equal("ada.lovelace@example.com", user.Username)
	suite.Assert().Equal("0.00", user.TotalAmount)
	suite.Assert().NotContains(recorder.Body.String(), "password")

	var stored models.User
	suite.Require().Nil(models.DB.First(&stored, "id = ?", user.ID).Error)
	suite.Assert().NotEqual(testPassword, stored.PasswordHash)
	suite.Assert().Nil(stored.CheckPassword(testPassword))
}

func (suite *TestSuiteStandard) TestRegisterFails() {
	tests := []struct {
		name     string
		body     any
		expected map[string][]string
	}{
		{
			"Missing password",
			map[string]string{"username": "ada"},
			map[string][]string{"password": {"This field is required."}},
		},
		{
			"Short username",
			map[string]string{"username": "ad", "password": testPassword},
			map[string][]string{"username": {"Ensure this field has at least 3 characters."}},
		},
		{
			"Short password",
			map[string]string{"username": "ada", "password": "short"},
			map[string][]string{"password": {"Ensure this field has at least 8 characters."}},
		},
		{
			"Password too long",
			map[string]string{"username": "ada", "password": strings.Repeat("a", 73)},
			map[string][]string{"password": {"Ensure this field has no more than 72 characters."}},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/auth/register", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var errors map[string][]string
			test.DecodeResponse(t, &recorder, &errors)
			assert.Equal(t, tt.expected, errors)
		})
	}

	var count int64
	suite.Require().Nil(models.DB.Model(&models.User{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestRegisterInvalidUsername() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"username": "ada lovelace",
		"password": testPassword,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Contains(recorder.Body.String(), `"username"`)
}

func (suite *TestSuiteStandard) TestRegisterDuplicate() {
	body := map[string]string{
		"username": "ada",
		"password": testPassword,
	}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().JSONEq(`{"username": ["A user with that username already exists."]}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestRegisterEmptyBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().JSONEq(`{"error": "the request body must not be empty"}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestLogin() {
	user, _ := suite.registerUser()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", map[string]string{
		"username": user.Username,
		"password": testPassword,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var token v1.Token
	test.DecodeResponse(suite.T(), &recorder, &token)
	suite.Assert().NotEmpty(token.Token)
	suite.Assert().True(token.ExpiresAt.After(time.Now()))
}

func (suite *TestSuiteStandard) TestLoginFails() {
	user, _ := suite.registerUser()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"Wrong password", user.Username, "wrong horse battery staple"},
		{"Unknown user", "nobody", testPassword},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/auth/login", map[string]string{
				"username": tt.username,
				"password": tt.password,
			})
			test.AssertHTTPStatus(t, &recorder, http.StatusUnauthorized)
			assert.JSONEq(t, `{"error": "unable to log in with provided credentials"}`, recorder.Body.String())
		})
	}
}

func (suite *TestSuiteStandard) TestAuthenticationRequired() {
	paths := []string{
		"http://example.com/v1/budget-categories",
		"http://example.com/v1/transactions",
		"http://example.com/v1/transactions/export",
		"http://example.com/v1/users/me",
	}

	for _, path := range paths {
		suite.T().Run(path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusUnauthorized)
			assert.Equal(t, `Bearer realm="api"`, recorder.Header().Get("WWW-Authenticate"))

			recorder = test.Request(t, http.MethodGet, path, "", map[string]string{"Authorization": "Bearer invalid"})
			test.AssertHTTPStatus(t, &recorder, http.StatusUnauthorized)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	for _, path := range []string{"http://example.com/v1/auth/register", "http://example.com/v1/auth/login"} {
		recorder := test.Request(suite.T(), http.MethodOptions, path, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, POST", recorder.Header().Get("allow"))
	}
}
