package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API routes onto the engine. The root path
// redirects to the static front end, matching the original site layout.
func RegisterRoutes(r *gin.Engine, activities *ActivityHandler, health *HealthHandler, staticDir string) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
	})
	r.Static("/static", staticDir)

	r.GET("/health", health.Check)

	r.GET("/activities", activities.List)
	r.POST("/activities/:name/signup", activities.Signup)
	r.DELETE("/activities/:name/unregister", activities.Unregister)
}
