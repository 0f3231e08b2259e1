package api

import "github.com/gin-gonic/gin"

// NewRouter builds the HTTP router for the compliance service.
func NewRouter(handler *ComplianceHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", handler.Health)
	r.GET("/health", handler.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/compliance/check", handler.Check)

	return r
}
