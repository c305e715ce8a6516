package handler

import (
	"net/http"

	"fairprice/backend/internal/analysis"
	"fairprice/backend/internal/catalog"
	"fairprice/backend/internal/export"
	"fairprice/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type businessQuery struct {
	District   string   `form:"district"`
	Categories []string `form:"category"`
	Keyword    string   `form:"keyword"`
}

func (q businessQuery) toQuery() catalog.Query {
	return catalog.Query{District: q.District, Categories: q.Categories, Keyword: q.Keyword}
}

type businessDetail struct {
	models.Business
	Tel         string          `json:"tel,omitempty"`
	MissingInfo bool            `json:"missing_info"`
	Notice      string          `json:"notice,omitempty"`
	Reports     []models.Report `json:"reports"`
	Message     string          `json:"message,omitempty"`
}

func (h *Handler) ListDistricts(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.DistrictOptions())
}

func (h *Handler) ListCategories(c *gin.Context) {
	list, ok := h.catalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, catalog.Categories(list))
}

// filtered binds the query string and applies it to the catalog.
func (h *Handler) filtered(c *gin.Context) ([]models.Business, bool) {
	var q businessQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": h.msg(c, "invalid_request")})
		return nil, false
	}
	list, ok := h.catalog(c)
	if !ok {
		return nil, false
	}
	return catalog.Filter(list, q.toQuery()), true
}

// ListBusinesses returns the filtered rows with the dashboard metrics.
func (h *Handler) ListBusinesses(c *gin.Context) {
	rows, ok := h.filtered(c)
	if !ok {
		return
	}

	table, err := h.Reports.Storage.LoadReports(c.Request.Context())
	if err != nil {
		h.logger(c).WithError(err).Error("[reports.load]")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "report_failed")})
		return
	}

	resp := gin.H{
		"businesses": rows,
		"summary":    analysis.Summarize(rows, table.Reports, h.Reports.Now().In(h.Reports.Location)),
	}
	if len(rows) == 0 {
		resp["message"] = h.msg(c, "no_matches")
	}
	c.JSON(http.StatusOK, resp)
}

// GetBusiness returns one business card and its report thread.
func (h *Handler) GetBusiness(c *gin.Context) {
	list, ok := h.catalog(c)
	if !ok {
		return
	}

	name := c.Param("name")
	b, found := catalog.Find(list, name)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": h.msg(c, "unknown_business", name)})
		return
	}

	thread, err := h.Reports.Thread(c.Request.Context(), name)
	if err != nil {
		h.logger(c).WithError(err).Error("[reports.thread]")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": h.msg(c, "report_failed")})
		return
	}

	detail := businessDetail{Business: b, MissingInfo: b.MissingInfo(), Reports: thread}
	if tel, ok := catalog.DialablePhone(b.Phone); ok {
		detail.Tel = tel
	}
	if detail.MissingInfo {
		detail.Notice = h.msg(c, "missing_pride")
	}
	if len(thread) == 0 {
		detail.Message = h.msg(c, "no_reports")
	}
	c.JSON(http.StatusOK, detail)
}

// ExportBusinesses streams the filtered catalog as a spreadsheet.
func (h *Handler) ExportBusinesses(c *gin.Context) {
	rows, ok := h.filtered(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="fairprice.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := export.WriteXLSX(c.Writer, rows); err != nil {
		h.logger(c).WithError(err).Error("[export.xlsx]")
		_ = c.Error(err)
	}
}
