package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogimardilah/klinik-api/middlewares"
	"github.com/yogimardilah/klinik-api/services"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type ExportHandler struct {
	service *services.ExportService
}

func NewExportHandler(service *services.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export serves the roster in the format selected by the "format" query
// parameter. Excel is the default.
func (h *ExportHandler) Export(c *gin.Context) {
	switch c.DefaultQuery("format", "excel") {
	case "pdf":
		h.ExportPDF(c)
	case "excel", "xlsx":
		h.ExportExcel(c)
	default:
		middlewares.HttpError(c, "Unsupported export format", http.StatusBadRequest, nil)
	}
}

func (h *ExportHandler) ExportExcel(c *gin.Context) {
	content, filename, err := h.service.ExcelExport(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to export patients", http.StatusInternalServerError, err)
		return
	}

	middlewares.RecordExportGenerated("excel")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}

func (h *ExportHandler) ExportPDF(c *gin.Context) {
	content, filename, err := h.service.PDFExport(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to export patients", http.StatusInternalServerError, err)
		return
	}

	middlewares.RecordExportGenerated("pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, pdfContentType, content)
}
