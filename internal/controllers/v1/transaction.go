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

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Export
	{
		r.OPTIONS("/export", OptionsTransactionExport)
		r.GET("/export", ExportTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PUT("/:id", UpdateTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Security		BearerAuth
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail[models.Transaction](c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction owned by the authenticated user. The budget category must be owned by the user, too.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	Transaction
// @Failure		400			{object}	httputil.FieldErrors
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Security		BearerAuth
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.DecodeFields(c, &editable)
	if err != nil {
		abortWithError(c, err)
		return
	}

	user := auth.CurrentUser(c)
	err = editable.checkCategory(user)
	if err != nil {
		abortWithError(c, err)
		return
	}

	transaction := editable.model()
	transaction.OwnerID = user.ID

	err = models.DB.Create(&transaction).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTransaction(transaction))
}

// @Summary		Get transactions
// @Description	Returns the transactions of the authenticated user in the order they were created
// @Tags			Transactions
// @Produce		json
// @Success		200			{array}		Transaction
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			category	query		string	false	"Filter by budget category ID"
// @Param			offset		query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of transactions to return. Defaults to all."
// @Security		BearerAuth
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", httputil.ErrInvalidQueryString, err))
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Scopes(models.OwnedBy(auth.CurrentUser(c))).
		Order("created_at ASC").
		Where(filter.model(), queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all transactions
	limit := -1
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, data)
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	Transaction
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, ok := ownedResource[models.Transaction](c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, newTransaction(transaction))
}

// @Summary		Update transaction
// @Description	Update an existing transaction. Only values to be updated need to be specified, the owner cannot be changed.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	Transaction
// @Failure		400			{object}	httputil.FieldErrors
// @Failure		401			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Security		BearerAuth
// @Router			/v1/transactions/{id} [put]
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	transaction, ok := ownedResource[models.Transaction](c)
	if !ok {
		return
	}

	// Start with the current values so that only fields in the body are changed
	editable := transactionEditable(transaction)
	err := httputil.DecodeFields(c, &editable)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if editable.CategoryID != transaction.CategoryID {
		err = editable.checkCategory(auth.CurrentUser(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
	}

	updated := editable.model()
	updated.DefaultModel = transaction.DefaultModel
	updated.OwnerID = transaction.OwnerID

	err = models.DB.Select("CategoryID", "Amount", "Description", "Date").Updates(&updated).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransaction(updated))
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Security		BearerAuth
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, ok := ownedResource[models.Transaction](c)
	if !ok {
		return
	}

	err := models.DB.Delete(&transaction).Error
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
