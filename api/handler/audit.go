package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/models"
)

// Audit returns a handler for POST /api/v1/audit.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Pipeline.Run → report view + snapshot + timing.
//  3. Return 200 with the view, or map the stage failure to a status code.
func Audit(p *Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AuditRequest
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

		result, err := p.Run(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err, result.Timing)
			return
		}

		c.JSON(http.StatusOK, models.AuditResponse{
			Success:  true,
			Report:   result.View,
			Snapshot: result.Snapshot,
			Timing:   result.Timing,
		})
	}
}
