package v1

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smyja/flite/internal/models"
	"gorm.io/gorm"
)

// BudgetCategoryEditable represents all user configurable parameters
type BudgetCategoryEditable struct {
	Name        string           `json:"name" validate:"required,max=255" example:"Groceries"`                                                             // Name of the category
	Description string           `json:"description" example:"Food and household supplies"`                                                                // Description of the category
	MaxSpend    *decimal.Decimal `json:"max_spend" validate:"required,decimal_gte=0,decimal_places=2,max_digits=12,max_whole_digits=10" swaggertype:"string" example:"400.00"` // Maximum amount to spend in this category
}

func (editable BudgetCategoryEditable) model() models.BudgetCategory {
	category := models.BudgetCategory{
		Name:        editable.Name,
		Description: editable.Description,
	}

	if editable.MaxSpend != nil {
		category.MaxSpend = *editable.MaxSpend
	}

	return category
}

// budgetCategoryEditable returns the editable fields of an existing category.
func budgetCategoryEditable(model models.BudgetCategory) BudgetCategoryEditable {
	maxSpend := model.MaxSpend

	return BudgetCategoryEditable{
		Name:        model.Name,
		Description: model.Description,
		MaxSpend:    &maxSpend,
	}
}

type BudgetCategory struct {
	ID          uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the category
	Name        string    `json:"name" example:"Groceries"`                          // Name of the category
	Description string    `json:"description" example:"Food and household supplies"` // Description of the category
	MaxSpend    string    `json:"max_spend" example:"400.00"`                        // Maximum amount to spend in this category
}

func newBudgetCategory(model models.BudgetCategory) BudgetCategory {
	return BudgetCategory{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		MaxSpend:    money(model.MaxSpend),
	}
}

type BudgetCategoryQueryFilter struct {
	Search string `form:"search" filterField:"false"` // By string in name or description
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to all.
}

// searchFilter restricts the query to rows that contain search
// in their name or description.
func searchFilter(db, query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}

	pattern := fmt.Sprintf("%%%s%%", likeEscaper.Replace(search))
	return query.Where(
		db.Where(`name LIKE ? ESCAPE '\'`, pattern).Or(
			db.Where(`description LIKE ? ESCAPE '\'`, pattern),
		),
	)
}

// likeEscaper makes the LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
