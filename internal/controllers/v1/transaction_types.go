package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
	flite_uuid "github.com/smyja/flite/internal/uuid"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	CategoryID  uuid.UUID        `json:"category" validate:"required" example:"65392deb-5e92-4268-b114-297faad6cdce"`                    // ID of the budget category
	Amount      *decimal.Decimal `json:"amount" validate:"required,decimal_places=2,max_digits=12,max_whole_digits=10" swaggertype:"string" example:"12.50"` // Amount of the transaction
	Description string           `json:"description" validate:"max=255" example:"Weekly groceries"`                                      // Description of the transaction
	Date        *time.Time       `json:"date" example:"2024-03-01T10:00:00Z"`                                                            // Date of the transaction. Defaults to the time of creation.
}

func (editable TransactionEditable) model() models.Transaction {
	transaction := models.Transaction{
		CategoryID:  editable.CategoryID,
		Description: editable.Description,
	}

	if editable.Amount != nil {
		transaction.Amount = *editable.Amount
	}

	if editable.Date != nil {
		transaction.Date = *editable.Date
	}

	return transaction
}

// transactionEditable returns the editable fields of an existing transaction.
func transactionEditable(model models.Transaction) TransactionEditable {
	amount := model.Amount
	date := model.Date

	return TransactionEditable{
		CategoryID:  model.CategoryID,
		Amount:      &amount,
		Description: model.Description,
		Date:        &date,
	}
}

// checkCategory verifies that the budget category exists and is owned by the user.
func (editable TransactionEditable) checkCategory(user models.User) error {
	err := models.DB.Scopes(models.OwnedBy(user)).First(&models.BudgetCategory{}, "id = ?", editable.CategoryID).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return httputil.FieldErrors{
			"category": {fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", editable.CategoryID)},
		}
	}

	return err
}

type Transaction struct {
	ID          uuid.UUID `json:"id" example:"8a7e3f2c-0c5b-4b8e-9f0e-2d3c4b5a6f70"`       // ID of the transaction
	CategoryID  uuid.UUID `json:"category" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the budget category
	Amount      string    `json:"amount" example:"12.50"`                                  // Amount of the transaction
	Description string    `json:"description" example:"Weekly groceries"`                  // Description of the transaction
	Date        time.Time `json:"date" example:"2024-03-01T10:00:00Z"`                     // Date of the transaction
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		ID:          model.ID,
		CategoryID:  model.CategoryID,
		Amount:      money(model.Amount),
		Description: model.Description,
		Date:        model.Date,
	}
}

type TransactionQueryFilter struct {
	CategoryID flite_uuid.UUID `form:"category"`                   // By ID of the budget category
	Offset     uint            `form:"offset" filterField:"false"` // The offset of the first transaction returned. Defaults to 0.
	Limit      int             `form:"limit" filterField:"false"`  // Maximum number of transactions to return. Defaults to all.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		CategoryID: f.CategoryID.UUID,
	}
}
