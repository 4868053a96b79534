package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// firstByID fetches a UUID-keyed resource, handling URI binding and the
// error response.
func firstByID[R models.Resident | models.FinancialIncome | models.FinancialExpense | models.Announcement | models.Reservation | models.Document](c *gin.Context, resource *R) bool {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return false
	}

	if err := models.DB.First(resource, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return false
	}

	return true
}

// deleteResource deletes a UUID-keyed resource.
func deleteResource[R models.Resident | models.Announcement | models.Reservation | models.Document](c *gin.Context) {
	var resource R
	if !firstByID(c, &resource) {
		return
	}

	if err := models.DB.Unscoped().Delete(&resource).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
