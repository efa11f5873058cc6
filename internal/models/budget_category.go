package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetCategory groups transactions and sets an upper limit for spending.
type BudgetCategory struct {
	DefaultModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Owner       User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	MaxSpend    decimal.Decimal `gorm:"type:DECIMAL(12,2);not null"`
}

func (c BudgetCategory) String() string {
	return c.Name
}
