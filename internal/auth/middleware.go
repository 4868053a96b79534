package auth

import (
	"net/http"
	"strings"

	"github.com/condofacil/backend/internal/httperror"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

const claimsContextKey = "condofacil-claims"

// Middleware parses the Bearer token and stores the claims in the request
// context. Requests without a valid token are rejected.
func Middleware(service *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.NewFromString("a Bearer token is required"))
			return
		}

		claims, err := service.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(err))
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims the middleware stored for this request,
// or nil for unauthenticated requests.
func ClaimsFrom(c *gin.Context) *Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}

	claims, ok := value.(*Claims)
	if !ok {
		return nil
	}

	return claims
}

// RequireRole rejects requests whose user has none of the given roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.NewFromString("a Bearer token is required"))
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, httperror.NewFromString("your role does not allow this operation"))
	}
}

// MatriculaAllowed reports whether the request's user may act on the given
// matricula. Admins may act on any tenant, everyone else only on their own.
func MatriculaAllowed(c *gin.Context, matricula string) bool {
	claims := ClaimsFrom(c)
	if claims == nil {
		return false
	}

	if claims.Role == models.RoleAdmin {
		return true
	}

	return claims.Matricula == matricula
}

// Actor returns the email of the request's user for audit rows.
func Actor(c *gin.Context) string {
	claims := ClaimsFrom(c)
	if claims == nil {
		return ""
	}

	return claims.Email
}
