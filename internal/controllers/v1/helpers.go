package v1

import (
	"github.com/gin-gonic/gin"
)

// ContextURL is the context key under which the router stores the base URL
// the API is reachable at, for building resource links.
const ContextURL = "condofacil-base-url"

func requestURL(c *gin.Context) string {
	return c.GetString(ContextURL)
}

// limitOrDefault returns the requested page size, defaulting to 50.
func limitOrDefault(limit int) int {
	if limit == 0 {
		return 50
	}

	return limit
}
