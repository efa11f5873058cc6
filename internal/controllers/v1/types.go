package v1

import (
	"github.com/shopspring/decimal"
	flite_uuid "github.com/smyja/flite/internal/uuid"
)

type URIID struct {
	ID flite_uuid.UUID `uri:"id" format:"UUID"` // ID of the resource
}

// money formats an amount of money for responses.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
