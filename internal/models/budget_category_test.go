package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/smyja/flite/internal/models"
)

func (suite *TestSuiteStandard) TestBudgetCategoryString() {
	suite.Assert().Equal("Groceries", models.BudgetCategory{Name: "Groceries"}.String())
}

func (suite *TestSuiteStandard) TestBudgetCategoryMaxSpend() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestBudgetCategory(models.BudgetCategory{
		OwnerID:  user.ID,
		MaxSpend: decimal.RequireFromString("100.50"),
	})

	var stored models.BudgetCategory
	suite.Require().Nil(models.DB.First(&stored, "id = ?", category.ID).Error)
	suite.Assert().Equal("100.50", stored.MaxSpend.StringFixed(2))
}

func (suite *TestSuiteStandard) TestBudgetCategoryOwnedBy() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	category := suite.createTestBudgetCategory(models.BudgetCategory{OwnerID: user.ID})
	suite.createTestBudgetCategory(models.BudgetCategory{OwnerID: other.ID})

	var categories []models.BudgetCategory
	suite.Require().Nil(models.DB.Scopes(models.OwnedBy(user)).Find(&categories).Error)
	suite.Require().Len(categories, 1)
	suite.Assert().Equal(category.ID, categories[0].ID)

	var found models.BudgetCategory
	err := models.DB.Scopes(models.OwnedBy(other)).First(&found, "id = ?", category.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no budget category matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestBudgetCategoryDeleteOwner() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestBudgetCategory(models.BudgetCategory{OwnerID: user.ID})

	suite.Require().Nil(models.DB.Delete(&user).Error)

	err := models.DB.First(&models.BudgetCategory{}, "id = ?", category.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
