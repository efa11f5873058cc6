package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smyja/flite/internal/auth"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
)

type User struct {
	ID          uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the user
	Username    string    `json:"username" example:"ada"`                            // Name of the user
	TotalAmount string    `json:"total_amount" example:"100.00"`                     // Sum of the amounts of all transactions of the user
}

func newUser(model models.User, total decimal.Decimal) User {
	return User{
		ID:          model.ID,
		Username:    model.Username,
		TotalAmount: money(total),
	}
}

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/me", OptionsCurrentUser)
	r.GET("/me", GetCurrentUser)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Security		BearerAuth
// @Router			/v1/users/me [options]
func OptionsCurrentUser(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get current user
// @Description	Returns the authenticated user with the total amount of all their transactions
// @Tags			Users
// @Produce		json
// @Success		200	{object}	User
// @Failure		401	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Security		BearerAuth
// @Router			/v1/users/me [get]
func GetCurrentUser(c *gin.Context) {
	user := auth.CurrentUser(c)

	total, err := user.TotalAmount(models.DB)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUser(user, total))
}
