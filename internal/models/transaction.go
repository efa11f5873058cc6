package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single expense or income booked on a budget category.
type Transaction struct {
	DefaultModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Owner       User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Category    BudgetCategory  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(12,2);not null"`
	Description string          `gorm:"size:255"`
	Date        time.Time       `gorm:"index"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the Date to now if it is not set and
// converts it to UTC otherwise.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
