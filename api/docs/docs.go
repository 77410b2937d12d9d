// Package docs embeds the OpenAPI document served at /openapi.json and
// rendered by the Swagger UI.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed openapi.json
var OpenAPI []byte

// ServeOpenAPI writes the embedded document
func ServeOpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", OpenAPI)
}
