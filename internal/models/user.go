package models

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is the owner of budget categories and transactions.
type User struct {
	DefaultModel
	Username     string `json:"username" gorm:"uniqueIndex;size:150;not null" example:"ada"`
	PasswordHash string `json:"-" gorm:"not null"`
}

// SetPassword hashes the password with bcrypt and stores the hash.
//
// A cost of 0 uses bcrypt.DefaultCost.
func (u *User) SetPassword(password string, cost int) error {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hashing password failed: %w", err)
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a password against the stored hash.
func (u User) CheckPassword(password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}

	return err
}

// TotalAmount returns the sum of the amounts of all transactions the user owns.
//
// A user without transactions has a total of zero.
func (u User) TotalAmount(db *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := db.Model(&Transaction{}).
		Where(&Transaction{OwnerID: u.ID}).
		Select("SUM(amount)").
		Row().
		Scan(&total)
	if err != nil {
		log.Error().Str("user", u.ID.String()).Msgf("%T: %v", err, err.Error())
		return decimal.Zero, ErrGeneral
	}

	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal.Round(2), nil
}
