package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smyja/flite/internal/auth"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterBudgetCategoryRoutes registers the routes for budget categories with
// the RouterGroup that is passed.
func RegisterBudgetCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetCategoryList)
		r.GET("", GetBudgetCategories)
		r.POST("", CreateBudgetCategory)
	}

	// Budget category with ID
	{
		r.OPTIONS("/:id", OptionsBudgetCategoryDetail)
		r.GET("/:id", GetBudgetCategory)
		r.PUT("/:id", UpdateBudgetCategory)
		r.PATCH("/:id", UpdateBudgetCategory)
		r.DELETE("/:id", DeleteBudgetCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Categories
// @Success		204
// @Security		BearerAuth
// @Router			/v1/budget-categories [options]
func OptionsBudgetCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget Categories
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/budget-categories/{id} [options]
func OptionsBudgetCategoryDetail(c *gin.Context) {
	resourceOptionsDetail[models.BudgetCategory](c)
}

// @Summary		Create budget category
// @Description	Creates a new budget category owned by the authenticated user
// @Tags			Budget Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	BudgetCategory
// @Failure		400			{object}	httputil.FieldErrors
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			category	body		BudgetCategoryEditable	true	"Budget category"
// @Security		BearerAuth
// @Router			/v1/budget-categories [post]
func CreateBudgetCategory(c *gin.Context) {
	var editable BudgetCategoryEditable
	err := httputil.DecodeFields(c, &editable)
	if err != nil {
		abortWithError(c, err)
		return
	}

	category := editable.model()
	category.OwnerID = auth.CurrentUser(c).ID

	err = models.DB.Create(&category).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newBudgetCategory(category))
}

// @Summary		Get budget categories
// @Description	Returns the budget categories of the authenticated user in the order they were created
// @Tags			Budget Categories
// @Produce		json
// @Success		200		{array}		BudgetCategory
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			search	query		string	false	"Search for this text in name and description"
// @Param			offset	query		uint	false	"The offset of the first category returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of categories to return. Defaults to all."
// @Security		BearerAuth
// @Router			/v1/budget-categories [get]
func GetBudgetCategories(c *gin.Context) {
	var filter BudgetCategoryQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", httputil.ErrInvalidQueryString, err))
		return
	}

	// Get the fields that are set in the query string
	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Scopes(models.OwnedBy(auth.CurrentUser(c))).
		Order("created_at ASC")

	q = searchFilter(models.DB, q, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all categories
	limit := -1
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.BudgetCategory
	err = q.Find(&categories).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	data := make([]BudgetCategory, 0, len(categories))
	for _, category := range categories {
		data = append(data, newBudgetCategory(category))
	}

	c.JSON(http.StatusOK, data)
}

// @Summary		Get budget category
// @Description	Returns a specific budget category
// @Tags			Budget Categories
// @Produce		json
// @Success		200	{object}	BudgetCategory
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/budget-categories/{id} [get]
func GetBudgetCategory(c *gin.Context) {
	category, ok := ownedResource[models.BudgetCategory](c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, newBudgetCategory(category))
}

// @Summary		Update budget category
// @Description	Update an existing budget category. Only values to be updated need to be specified, the owner cannot be changed.
// @Tags			Budget Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	BudgetCategory
// @Failure		400			{object}	httputil.FieldErrors
// @Failure		401			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		BudgetCategoryEditable	true	"Budget category"
// @Security		BearerAuth
// @Router			/v1/budget-categories/{id} [put]
// @Router			/v1/budget-categories/{id} [patch]
func UpdateBudgetCategory(c *gin.Context) {
	category, ok := ownedResource[models.BudgetCategory](c)
	if !ok {
		return
	}

	// Start with the current values so that only fields in the body are changed
	editable := budgetCategoryEditable(category)
	err := httputil.DecodeFields(c, &editable)
	if err != nil {
		abortWithError(c, err)
		return
	}

	updated := editable.model()
	updated.DefaultModel = category.DefaultModel
	updated.OwnerID = category.OwnerID

	err = models.DB.Select("Name", "Description", "MaxSpend").Updates(&updated).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBudgetCategory(updated))
}

// @Summary		Delete budget category
// @Description	Deletes a budget category and all of its transactions
// @Tags			Budget Categories
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/budget-categories/{id} [delete]
func DeleteBudgetCategory(c *gin.Context) {
	category, ok := ownedResource[models.BudgetCategory](c)
	if !ok {
		return
	}

	err := models.DB.Delete(&category).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
