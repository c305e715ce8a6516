package handler

import (
	"errors"
	"net/http"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type reportRequest struct {
	BusinessName string `json:"business_name" binding:"max=200"`
	Nickname     string `json:"nickname" binding:"max=50"`
	Kind         string `json:"kind" binding:"max=50"`
	Body         string `json:"body"`
}

// ProcessValidationErrors maps each failing field to its validation tag.
func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorResponse
	}
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}

// ListReports returns the whole log, read fresh from disk.
func (h *Handler) ListReports(c *gin.Context) {
	table, err := h.Reports.Storage.LoadReports(c.Request.Context())
	if err != nil {
		h.logger(c).WithError(err).Error("[reports.load]")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "report_failed")})
		return
	}
	c.JSON(http.StatusOK, table)
}

// CreateReport appends a report. An empty body is rejected with 422 before
// anything is written.
func (h *Handler) CreateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  h.msg(c, "invalid_request"),
			"fields": ProcessValidationErrors(err),
		})
		return
	}
	if req.Nickname == "" {
		req.Nickname = config.DefaultNickname
	}

	rep, err := h.Reports.Submit(c.Request.Context(), req.BusinessName, req.Nickname, req.Kind, req.Body)
	if errors.Is(err, report.ErrEmptyBody) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": h.msg(c, "empty_body")})
		return
	}
	if errors.Is(err, report.ErrBodyTooLong) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": h.msg(c, "body_too_long")})
		return
	}
	if err != nil {
		h.logger(c).WithError(err).Error("[reports.append]")
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "report_failed")})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"report":  rep,
		"message": h.msg(c, "report_saved", rep.BusinessName),
	})
}
