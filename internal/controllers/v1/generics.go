package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/smyja/flite/internal/auth"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
)

// ownedResource loads the resource with the ID from the request path.
//
// Resources that do not exist and resources owned by other users are
// handled the same way: the request is aborted with 404.
func ownedResource[R models.BudgetCategory | models.Transaction](c *gin.Context) (resource R, ok bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		abortWithError(c, httputil.ErrInvalidUUID)
		return resource, false
	}

	err = models.DB.Scopes(models.OwnedBy(auth.CurrentUser(c))).First(&resource, "id = ?", uri.ID.UUID).Error
	if err != nil {
		abortWithError(c, err)
		return resource, false
	}

	return resource, true
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.BudgetCategory | models.Transaction](c *gin.Context) {
	if _, ok := ownedResource[R](c); !ok {
		return
	}

	httputil.OptionsGetPutPatchDelete(c)
}
