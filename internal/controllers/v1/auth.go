package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public session routes.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/login", OptionsAuth)
	r.POST("/login", co.Login)
	r.OPTIONS("/password-reset", OptionsAuth)
	r.POST("/password-reset", co.RequestPasswordReset)
}

// LoginRequest is the request body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" example:"sindico@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

// LoginData is the session issued for valid credentials.
type LoginData struct {
	Token string      `json:"token"` // Bearer token for subsequent requests
	User  models.User `json:"user"`  // The logged-in user
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`  // The session data
	Error *string    `json:"error"` // The error, if any occurred
}

// PasswordResetRequest is the request body for the password reset proxy.
type PasswordResetRequest struct {
	Email string `json:"email" example:"sindico@example.com"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/login [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Log in
// @Description	Verifies the credentials and issues a session token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	LoginResponse
// @Failure		400		{object}	LoginResponse
// @Failure		401		{object}	LoginResponse
// @Param			login	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var request LoginRequest
	if err := httputil.BindData(c, &request); err != nil {
		e := err.Error()
		c.JSON(status(err), LoginResponse{Error: &e})
		return
	}

	user, err := models.UserByEmail(models.DB, request.Email)
	if err != nil || !user.CheckPassword(request.Password) {
		// Same response for unknown email and wrong password so that the
		// endpoint does not leak which addresses have an account.
		e := errCredentialsInvalid.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &e})
		return
	}

	token, err := co.JWT.GenerateToken(user)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Data: &LoginData{
		Token: token,
		User:  user,
	}})
}

// @Summary		Request password reset
// @Description	Asks the external identity provider to mail a reset link. Responds 204 regardless of whether the address has an account.
// @Tags			Auth
// @Accept			json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		502		{object}	httpError
// @Param			reset	body		PasswordResetRequest	true	"Email address"
// @Router			/v1/auth/password-reset [post]
func (co Controller) RequestPasswordReset(c *gin.Context) {
	var request PasswordResetRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if _, err := models.UserByEmail(models.DB, request.Email); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := co.Functions.SendPasswordReset(c.Request.Context(), request.Email); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
