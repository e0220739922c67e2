package handler

import (
	clinicapp "github.com/Vitorafonso317/lunysse-backend/internal/application/clinic"
	"github.com/gin-gonic/gin"
)

// PatientHandler handles patient record endpoints
type PatientHandler struct {
	BaseHandler
	patientService *clinicapp.PatientService
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(patientService *clinicapp.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create registers a new patient record for the clinician
func (h *PatientHandler) Create(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}

	var req clinicapp.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.patientService.Create(c.Request.Context(), principal.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the clinician's patients with session counters
func (h *PatientHandler) List(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}

	resp, err := h.patientService.List(c.Request.Context(), principal.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one patient record
func (h *PatientHandler) Get(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	patientID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.patientService.Get(c.Request.Context(), principal.ID, patientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update patches a patient record
func (h *PatientHandler) Update(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	patientID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req clinicapp.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.patientService.Update(c.Request.Context(), principal.ID, patientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Sessions returns the patient's appointment history
func (h *PatientHandler) Sessions(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	patientID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.patientService.Sessions(c.Request.Context(), principal.ID, patientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Profile returns the patient record with its linked account, if any
func (h *PatientHandler) Profile(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	patientID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.patientService.Profile(c.Request.Context(), principal.ID, patientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
