package handler

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route onto a fresh gin engine. corsOrigins may
// contain "*" to allow any origin.
func NewRouter(h *Handler, logger logrus.FieldLogger, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), corsMiddleware(corsOrigins))

	r.GET("/health", h.Health)
	r.GET("/districts", h.ListDistricts)
	r.GET("/categories", h.ListCategories)
	r.GET("/businesses", h.ListBusinesses)
	r.GET("/businesses/:name", h.GetBusiness)
	r.GET("/reports", h.ListReports)
	r.POST("/reports", h.CreateReport)
	r.GET("/export.xlsx", h.ExportBusinesses)
	r.GET("/ws", h.ServeWebSocket)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Accept-Language", RequestIDHeader)
	cfg.ExposeHeaders = []string{RequestIDHeader, "Content-Disposition"}
	return cors.New(cfg)
}
