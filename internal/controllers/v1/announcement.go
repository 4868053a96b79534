package v1

import (
	"net/http"
	"time"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/functions"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAnnouncementRoutes registers the routes for announcements.
func (co Controller) RegisterAnnouncementRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsAnnouncementList)
		r.GET("", GetAnnouncements)
		r.POST("", auth.RequireRole(models.RoleAdmin, models.RoleManager), CreateAnnouncement)
	}

	{
		r.OPTIONS("/:id", OptionsAnnouncementDetail)
		r.GET("/:id", GetAnnouncement)
		r.DELETE("/:id", auth.RequireRole(models.RoleAdmin, models.RoleManager), DeleteAnnouncement)
		r.POST("/:id/publish", auth.RequireRole(models.RoleAdmin, models.RoleManager), co.PublishAnnouncement)
	}
}

// AnnouncementEditable represents all user configurable parameters.
type AnnouncementEditable struct {
	Matricula string `json:"matricula" example:"12345678100"`
	Titulo    string `json:"titulo" example:"Assembleia geral"`
	Mensagem  string `json:"mensagem" example:"A assembleia acontece dia 15 às 19h no salão de festas."`
}

type AnnouncementResponse struct {
	Data  *models.Announcement `json:"data"`  // The Announcement data
	Error *string              `json:"error"` // The error, if any occurred
}

type AnnouncementListResponse struct {
	Data  []models.Announcement `json:"data"`  // List of Announcements
	Error *string               `json:"error"` // The error, if any occurred
}

type AnnouncementQueryFilter struct {
	Matricula string `form:"matricula"` // Condominium to list announcements for
	Offset    uint   `form:"offset"`    // The offset of the first Announcement returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of Announcements to return. Defaults to 50.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Announcements
// @Success		204
// @Router			/v1/announcements [options]
func OptionsAnnouncementList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Announcements
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/announcements/{id} [options]
func OptionsAnnouncementDetail(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Create announcement
// @Description	Creates an announcement as a draft. Publishing it to resident inboxes is a separate step.
// @Tags			Announcements
// @Accept			json
// @Produce		json
// @Success		201				{object}	AnnouncementResponse
// @Failure		400				{object}	AnnouncementResponse
// @Failure		403				{object}	AnnouncementResponse
// @Failure		500				{object}	AnnouncementResponse
// @Param			announcement	body		AnnouncementEditable	true	"Announcement"
// @Router			/v1/announcements [post]
func CreateAnnouncement(c *gin.Context) {
	var editable AnnouncementEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), AnnouncementResponse{Error: &e})
		return
	}

	if !auth.MatriculaAllowed(c, editable.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, AnnouncementResponse{Error: &e})
		return
	}

	announcement := models.Announcement{
		Matricula: editable.Matricula,
		Titulo:    editable.Titulo,
		Mensagem:  editable.Mensagem,
		Autor:     auth.Actor(c),
	}

	if err := models.DB.Create(&announcement).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), AnnouncementResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, AnnouncementResponse{Data: &announcement})
}

// @Summary		List announcements
// @Description	Returns the announcements of a condominium, newest first
// @Tags			Announcements
// @Produce		json
// @Success		200	{object}	AnnouncementListResponse
// @Failure		403	{object}	AnnouncementListResponse
// @Router			/v1/announcements [get]
// @Param			matricula	query	string	true	"Condominium to list announcements for"
// @Param			offset		query	uint	false	"The offset of the first Announcement returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Announcements to return. Defaults to 50."
func GetAnnouncements(c *gin.Context) {
	var filter AnnouncementQueryFilter
	_ = c.Bind(&filter)

	if !auth.MatriculaAllowed(c, filter.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, AnnouncementListResponse{Error: &e})
		return
	}

	var announcements []models.Announcement
	err := models.DB.
		Where("matricula = ?", filter.Matricula).
		Order("created_at DESC").
		Offset(int(filter.Offset)).
		Limit(limitOrDefault(filter.Limit)).
		Find(&announcements).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AnnouncementListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AnnouncementListResponse{Data: announcements})
}

// @Summary		Get announcement
// @Description	Returns a specific announcement
// @Tags			Announcements
// @Produce		json
// @Success		200	{object}	AnnouncementResponse
// @Failure		400	{object}	AnnouncementResponse
// @Failure		403	{object}	AnnouncementResponse
// @Failure		404	{object}	AnnouncementResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/announcements/{id} [get]
func GetAnnouncement(c *gin.Context) {
	announcement, ok := announcementFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, AnnouncementResponse{Data: &announcement})
}

// @Summary		Publish announcement
// @Description	Emails the announcement to all active residents with an email address and stamps the publication time. Publishing twice is rejected.
// @Tags			Announcements
// @Produce		json
// @Success		200	{object}	AnnouncementResponse
// @Failure		400	{object}	AnnouncementResponse
// @Failure		403	{object}	AnnouncementResponse
// @Failure		404	{object}	AnnouncementResponse
// @Failure		502	{object}	AnnouncementResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/announcements/{id}/publish [post]
func (co Controller) PublishAnnouncement(c *gin.Context) {
	announcement, ok := announcementFromURI(c)
	if !ok {
		return
	}

	if announcement.PublishedAt != nil {
		e := "the announcement has already been published"
		c.JSON(http.StatusBadRequest, AnnouncementResponse{Error: &e})
		return
	}

	recipients, err := announcement.ResidentEmails(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AnnouncementResponse{Error: &e})
		return
	}

	if len(recipients) > 0 {
		err = co.Functions.SendAnnouncementEmail(c.Request.Context(), functions.AnnouncementEmail{
			Matricula:  announcement.Matricula,
			Titulo:     announcement.Titulo,
			Mensagem:   announcement.Mensagem,
			Recipients: recipients,
		})
		if err != nil {
			e := err.Error()
			c.JSON(status(err), AnnouncementResponse{Error: &e})
			return
		}
	}

	now := time.Now().In(time.UTC)
	announcement.PublishedAt = &now
	if err := models.DB.Save(&announcement).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), AnnouncementResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AnnouncementResponse{Data: &announcement})
}

// @Summary		Delete announcement
// @Description	Deletes an announcement
// @Tags			Announcements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/announcements/{id} [delete]
func DeleteAnnouncement(c *gin.Context) {
	if _, ok := announcementFromURI(c); !ok {
		return
	}

	deleteResource[models.Announcement](c)
}

func announcementFromURI(c *gin.Context) (models.Announcement, bool) {
	var announcement models.Announcement
	if !firstByID(c, &announcement) {
		return models.Announcement{}, false
	}

	if !auth.MatriculaAllowed(c, announcement.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, AnnouncementResponse{Error: &e})
		return models.Announcement{}, false
	}

	return announcement, true
}
