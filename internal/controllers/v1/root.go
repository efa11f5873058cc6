package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smyja/flite/internal/auth"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
)

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	BudgetCategories string `json:"budgetCategories" example:"https://example.com/api/v1/budget-categories"` // URL of budget category list endpoint
	Transactions     string `json:"transactions" example:"https://example.com/api/v1/transactions"`          // URL of transaction list endpoint
	Export           string `json:"export" example:"https://example.com/api/v1/transactions/export"`         // URL of the transaction export
	Me               string `json:"me" example:"https://example.com/api/v1/users/me"`                        // URL of the authenticated user
	Register         string `json:"register" example:"https://example.com/api/v1/auth/register"`             // URL to register new users
	Login            string `json:"login" example:"https://example.com/api/v1/auth/login"`                   // URL to obtain a token
}

// RegisterRoutes registers all routes of the v1 API with the RouterGroup
// that is passed. Everything except the link list and the auth endpoints
// requires authentication with a token issued by the issuer.
func RegisterRoutes(r *gin.RouterGroup, issuer *auth.Issuer, bcryptCost int) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	RegisterAuthRoutes(r.Group("/auth"), issuer, bcryptCost)

	authenticated := r.Group("", auth.Required(issuer))
	RegisterBudgetCategoryRoutes(authenticated.Group("/budget-categories"))
	RegisterTransactionRoutes(authenticated.Group("/transactions"))
	RegisterUserRoutes(authenticated.Group("/users"))
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	RootResponse
// @Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			BudgetCategories: url + "/budget-categories",
			Transactions:     url + "/transactions",
			Export:           url + "/transactions/export",
			Me:               url + "/users/me",
			Register:         url + "/auth/register",
			Login:            url + "/auth/login",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
