package handler

import (
	reportapp "github.com/Vitorafonso317/lunysse-backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Stats returns the clinician's practice statistics. Clinicians can
// only read their own reports; a mismatched id looks like a missing
// resource.
func (h *ReportHandler) Stats(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	psychologistID, ok := h.bindUUIDParam(c, "psychologist_id")
	if !ok {
		return
	}
	if psychologistID != principal.ID {
		h.NotFound(c, "Report not found")
		return
	}

	resp, err := h.reportService.Stats(c.Request.Context(), psychologistID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RiskAnalysis returns per-patient risk labels for the clinician
func (h *ReportHandler) RiskAnalysis(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	psychologistID, ok := h.bindUUIDParam(c, "psychologist_id")
	if !ok {
		return
	}
	if psychologistID != principal.ID {
		h.NotFound(c, "Report not found")
		return
	}

	resp, err := h.reportService.RiskAnalysis(c.Request.Context(), psychologistID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
