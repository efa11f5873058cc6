package v1_test

import (
	"net/http"

	v1 "github.com/smyja/flite/internal/controllers/v1"
	"github.com/smyja/flite/test"
)

func (suite *TestSuiteStandard) TestCurrentUser() {
	user, headers := suite.registerUser()
	_, otherHeaders := suite.registerUser()

	suite.createTestTransaction(headers, map[string]any{"amount": "50"})
	suite.createTestTransaction(headers, map[string]any{"amount": "20.25"})
	suite.createTestTransaction(headers, map[string]any{"amount": "-0.25"})
	suite.createTestTransaction(otherHeaders, map[string]any{"amount": "1000"})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users/me", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var me v1.User
	test.DecodeResponse(suite.T(), &recorder, &me)
	suite.Assert().Equal(user.ID, me.ID)
	suite.Assert().Equal(user.Username, me.Username)
	suite.Assert().Equal("70.00", me.TotalAmount)
}

func (suite *TestSuiteStandard) TestCurrentUserNoTransactions() {
	_, headers := suite.registerUser()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users/me", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var me v1.User
	test.DecodeResponse(suite.T(), &recorder, &me)
	suite.Assert().Equal("0.00", me.TotalAmount)
}

func (suite *TestSuiteStandard) TestCurrentUserOptions() {
	_, headers := suite.registerUser()

	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/users/me", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCurrentUserDatabaseError() {
	_, headers := suite.registerUser()

	recorder := suite.requestWithClosedDB(http.MethodGet, "http://example.com/v1/users/me", "", headers)
	test.AssertHTTPStatus(suite.T(), recorder, http.StatusInternalServerError)
	suite.Assert().JSONEq(`{"error": "an error occurred on the server during your request"}`, recorder.Body.String())
}
