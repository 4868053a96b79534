package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterDocumentRoutes registers the routes for document metadata.
func RegisterDocumentRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsDocumentList)
		r.GET("", GetDocuments)
		r.POST("", auth.RequireRole(models.RoleAdmin, models.RoleManager), CreateDocument)
	}

	{
		r.OPTIONS("/:id", OptionsDocumentDetail)
		r.GET("/:id", GetDocument)
		r.DELETE("/:id", auth.RequireRole(models.RoleAdmin, models.RoleManager), DeleteDocument)
	}
}

// DocumentEditable represents all user configurable parameters.
type DocumentEditable struct {
	Matricula string `json:"matricula" example:"12345678100"`
	Nome      string `json:"nome" example:"ata-assembleia-2024-07.pdf"`
	Tipo      string `json:"tipo" example:"ata"`
	URL       string `json:"url" example:"https://storage.example.com/docs/ata-assembleia-2024-07.pdf"`
}

type DocumentResponse struct {
	Data  *models.Document `json:"data"`  // The Document data
	Error *string          `json:"error"` // The error, if any occurred
}

type DocumentListResponse struct {
	Data  []models.Document `json:"data"`  // List of Documents
	Error *string           `json:"error"` // The error, if any occurred
}

type DocumentQueryFilter struct {
	Matricula string `form:"matricula"` // Condominium to list documents for
	Tipo      string `form:"tipo"`      // Filter by document kind
	Nome      string `form:"nome"`      // Filter by name, supports globbing ("ata-*")
	Offset    uint   `form:"offset"`    // The offset of the first Document returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of Documents to return. Defaults to 50.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documents
// @Success		204
// @Router			/v1/documents [options]
func OptionsDocumentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Documents
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/documents/{id} [options]
func OptionsDocumentDetail(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Create document
// @Description	Records the metadata of a file kept in the external object storage. File contents are never stored here.
// @Tags			Documents
// @Accept			json
// @Produce		json
// @Success		201			{object}	DocumentResponse
// @Failure		400			{object}	DocumentResponse
// @Failure		403			{object}	DocumentResponse
// @Failure		500			{object}	DocumentResponse
// @Param			document	body		DocumentEditable	true	"Document"
// @Router			/v1/documents [post]
func CreateDocument(c *gin.Context) {
	var editable DocumentEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), DocumentResponse{Error: &e})
		return
	}

	if !auth.MatriculaAllowed(c, editable.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, DocumentResponse{Error: &e})
		return
	}

	document := models.Document{
		Matricula: editable.Matricula,
		Nome:      editable.Nome,
		Tipo:      editable.Tipo,
		URL:       editable.URL,
	}

	if err := models.DB.Create(&document).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), DocumentResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, DocumentResponse{Data: &document})
}

// @Summary		List documents
// @Description	Returns the documents of a condominium, newest first. The name filter supports globbing.
// @Tags			Documents
// @Produce		json
// @Success		200	{object}	DocumentListResponse
// @Failure		403	{object}	DocumentListResponse
// @Router			/v1/documents [get]
// @Param			matricula	query	string	true	"Condominium to list documents for"
// @Param			tipo		query	string	false	"Filter by document kind"
// @Param			nome		query	string	false	"Filter by name, supports globbing"
// @Param			offset		query	uint	false	"The offset of the first Document returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Documents to return. Defaults to 50."
func GetDocuments(c *gin.Context) {
	var filter DocumentQueryFilter
	_ = c.Bind(&filter)

	if !auth.MatriculaAllowed(c, filter.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, DocumentListResponse{Error: &e})
		return
	}

	q := models.DB.
		Where("matricula = ?", filter.Matricula).
		Order("created_at DESC")

	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var documents []models.Document
	err := q.Offset(int(filter.Offset)).
		Limit(limitOrDefault(filter.Limit)).
		Find(&documents).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DocumentListResponse{Error: &e})
		return
	}

	// Glob matching happens after the database query since SQL has no
	// portable glob operator.
	if filter.Nome != "" {
		matched := make([]models.Document, 0, len(documents))
		for _, document := range documents {
			if glob.Glob(filter.Nome, document.Nome) {
				matched = append(matched, document)
			}
		}
		documents = matched
	}

	c.JSON(http.StatusOK, DocumentListResponse{Data: documents})
}

// @Summary		Get document
// @Description	Returns a specific document
// @Tags			Documents
// @Produce		json
// @Success		200	{object}	DocumentResponse
// @Failure		400	{object}	DocumentResponse
// @Failure		403	{object}	DocumentResponse
// @Failure		404	{object}	DocumentResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/documents/{id} [get]
func GetDocument(c *gin.Context) {
	document, ok := documentFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{Data: &document})
}

// @Summary		Delete document
// @Description	Deletes document metadata. The file in the object storage is not touched.
// @Tags			Documents
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/documents/{id} [delete]
func DeleteDocument(c *gin.Context) {
	if _, ok := documentFromURI(c); !ok {
		return
	}

	deleteResource[models.Document](c)
}

func documentFromURI(c *gin.Context) (models.Document, bool) {
	var document models.Document
	if !firstByID(c, &document) {
		return models.Document{}, false
	}

	if !auth.MatriculaAllowed(c, document.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, DocumentResponse{Error: &e})
		return models.Document{}, false
	}

	return document, true
}
