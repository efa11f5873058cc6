package models_test

import (
	"github.com/smyja/flite/internal/models"
)

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	err := models.DB.First(&models.User{}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestDatabaseNotFound() {
	err := models.DB.First(&models.User{}, "username = ?", "nobody").Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no user matching your query", err.Error())
}
