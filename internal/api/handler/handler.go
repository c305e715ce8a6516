// Package handler exposes the catalog, the report log and the live feed
// over HTTP.
package handler

import (
	"errors"
	"net/http"

	"fairprice/backend/internal/catalog"
	"fairprice/backend/internal/feed"
	"fairprice/backend/internal/localization"
	"fairprice/backend/internal/models"
	"fairprice/backend/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogSource returns the current ordered catalog.
type CatalogSource interface {
	Get() ([]models.Business, error)
}

// Handler holds the services behind the HTTP routes.
type Handler struct {
	Catalog   CatalogSource
	Reports   *report.Service
	Hub       *feed.ManagerService
	Localizer *localization.Localizer
	Logger    logrus.FieldLogger
}

func NewHandler(cat CatalogSource, reports *report.Service, hub *feed.ManagerService, loc *localization.Localizer, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		Catalog:   cat,
		Reports:   reports,
		Hub:       hub,
		Localizer: loc,
		Logger:    logger,
	}
}

// lang picks the response language from Accept-Language.
func (h *Handler) lang(c *gin.Context) string {
	return h.Localizer.Match(c.GetHeader("Accept-Language"))
}

func (h *Handler) msg(c *gin.Context, key string, args ...any) string {
	if len(args) == 0 {
		return h.Localizer.GetString(h.lang(c), key)
	}
	return h.Localizer.Format(h.lang(c), key, args...)
}

// logger returns the handler logger tagged with the request ID.
func (h *Handler) logger(c *gin.Context) logrus.FieldLogger {
	return h.Logger.WithField("request_id", c.GetString(requestIDKey))
}

// catalog loads the catalog or writes the error response. A missing file is
// 503 so the dashboard can say the data is not there yet.
func (h *Handler) catalog(c *gin.Context) ([]models.Business, bool) {
	list, err := h.Catalog.Get()
	if err == nil {
		return list, true
	}

	if errors.Is(err, catalog.ErrCatalogNotFound) {
		h.logger(c).WithError(err).Warn("[catalog.missing]")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": h.msg(c, "catalog_missing")})
		return nil, false
	}

	h.logger(c).WithError(err).Error("[catalog.error]")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "catalog_unreadable")})
	return nil, false
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
