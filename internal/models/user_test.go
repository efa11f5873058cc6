package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/smyja/flite/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (suite *TestSuiteStandard) TestUserPassword() {
	var user models.User
	suite.Require().Nil(user.SetPassword("correct horse battery staple", bcrypt.MinCost))

	suite.Assert().NotEqual("correct horse battery staple", user.PasswordHash)
	suite.Assert().Nil(user.CheckPassword("correct horse battery staple"))
	suite.Assert().ErrorIs(user.CheckPassword("Tr0ub4dor&3"), models.ErrInvalidPassword)
}

func (suite *TestSuiteStandard) TestUserPasswordDefaultCost() {
	var user models.User
	suite.Require().Nil(user.SetPassword("correct horse battery staple", 0))

	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	suite.Require().Nil(err)
	suite.Assert().Equal(bcrypt.DefaultCost, cost)
}

func (suite *TestSuiteStandard) TestUserUsernameNotUnique() {
	user := suite.createTestUser(models.User{Username: "ada"})

	duplicate := models.User{Username: user.Username, PasswordHash: user.PasswordHash}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrUsernameNotUnique)
}

func (suite *TestSuiteStandard) TestUserTotalAmountZero() {
	user := suite.createTestUser(models.User{})

	total, err := user.TotalAmount(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(total.IsZero(), "Total is %s, should be zero", total)
	suite.Assert().Equal("0.00", total.StringFixed(2))
}

func (suite *TestSuiteStandard) TestUserTotalAmount() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	suite.createTestTransactionForUser(user, "50")
	suite.createTestTransactionForUser(user, "20")
	suite.createTestTransactionForUser(user, "30")
	suite.createTestTransactionForUser(other, "1000")

	total, err := user.TotalAmount(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(100).Equal(total), "Total is %s, should be 100", total)
}

func (suite *TestSuiteStandard) TestUserTotalAmountCents() {
	user := suite.createTestUser(models.User{})

	suite.createTestTransactionForUser(user, "0.10")
	suite.createTestTransactionForUser(user, "0.20")
	suite.createTestTransactionForUser(user, "-5.05")

	total, err := user.TotalAmount(models.DB)
	suite.Require().Nil(err)
	suite.Assert().Equal("-4.75", total.StringFixed(2))
}

func (suite *TestSuiteStandard) TestUserTotalAmountDBClosed() {
	user := suite.createTestUser(models.User{})
	suite.CloseDB()

	_, err := user.TotalAmount(models.DB)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
