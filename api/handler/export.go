package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/models"
	"github.com/storelens/storelens/render"
)

// Export returns a handler for POST /api/v1/audit/export.
//
// Runs the same pipeline as Audit, then renders the view into a DOCX or PDF
// document returned as a file attachment.
func Export(p *Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AuditResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		result, err := p.Run(c.Request.Context(), req.ToAuditRequest())
		if err != nil {
			respondError(c, err, result.Timing)
			return
		}

		var data []byte
		var mime string
		switch req.Format {
		case models.FormatPDF:
			data, err = p.Renderer.PDF(result.View)
			mime = render.MIMEPdf
		default:
			data, err = p.Renderer.DOCX(result.View)
			mime = render.MIMEDocx
		}
		if err != nil {
			respondError(c, err, result.Timing)
			return
		}

		filename := exportFilename(result.View.URL, req.Format)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, mime, data)
	}
}

// exportFilename derives a stable attachment name from the audited host.
func exportFilename(auditedURL, format string) string {
	host := "store"
	if u, err := url.Parse(auditedURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("audit-%s-%s.%s", host, time.Now().UTC().Format("2006-01-02"), format)
}
