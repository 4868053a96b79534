package v1

import (
	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/functions"
)

// Controller carries the dependencies handlers need beyond the database.
// Handlers that only touch the database are plain functions.
type Controller struct {
	JWT       *auth.JWTService
	Functions *functions.Client
}
