package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smyja/flite/internal/models"
)

func (suite *TestSuiteStandard) TestTransactionDateDefault() {
	before := time.Now().Add(-time.Second)
	user := suite.createTestUser(models.User{})
	transaction := suite.createTestTransactionForUser(user, "10")

	suite.Assert().True(transaction.Date.After(before), "Date %s should be set to the time of creation", transaction.Date)
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionDateKept() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestBudgetCategory(models.BudgetCategory{OwnerID: user.ID})

	date := time.Date(2024, 2, 29, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	transaction := suite.createTestTransaction(models.Transaction{
		OwnerID:    user.ID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(5),
		Date:       date,
	})

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, "id = ?", transaction.ID).Error)
	suite.Assert().True(date.Equal(stored.Date))
	suite.Assert().Equal(time.UTC, stored.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionCategoryDeleteCascades() {
	user := suite.createTestUser(models.User{})
	transaction := suite.createTestTransactionForUser(user, "10")

	suite.Require().Nil(models.DB.Delete(&models.BudgetCategory{DefaultModel: models.DefaultModel{ID: transaction.CategoryID}}).Error)

	err := models.DB.First(&models.Transaction{}, "id = ?", transaction.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no transaction matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestTransactionCategoryMustExist() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestBudgetCategory(models.BudgetCategory{OwnerID: user.ID})
	suite.Require().Nil(models.DB.Delete(&category).Error)

	err := models.DB.Create(&models.Transaction{
		OwnerID:    user.ID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(1),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
