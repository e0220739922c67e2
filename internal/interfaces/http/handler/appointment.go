package handler

import (
	"encoding/json"

	schedulingapp "github.com/Vitorafonso317/lunysse-backend/internal/application/scheduling"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	BaseHandler
	appointmentService *schedulingapp.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService *schedulingapp.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create books a new appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req schedulingapp.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.appointmentService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the caller's appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.appointmentService.List(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByEmail returns appointments for a patient email. The route is
// public; unknown emails yield an empty list rather than an error.
func (h *AppointmentHandler) ListByEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		h.BadRequest(c, "Missing email parameter")
		return
	}

	resp, err := h.appointmentService.ListByEmail(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one appointment visible to the caller
func (h *AppointmentHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	appointmentID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.appointmentService.Get(c.Request.Context(), principal, appointmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update patches an appointment. Unknown fields in the body are
// rejected so stale clients fail loudly instead of silently losing
// writes.
func (h *AppointmentHandler) Update(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	appointmentID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req schedulingapp.UpdateAppointmentRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.appointmentService.Update(c.Request.Context(), principal, appointmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an appointment, keeping the record
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	appointmentID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.appointmentService.Cancel(c.Request.Context(), principal, appointmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AvailableSlots returns the free slot labels for a clinician and date
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		h.BadRequest(c, "Missing date query parameter")
		return
	}

	psychologistID := principal.ID
	if raw := c.Query("psychologist_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid psychologist_id query parameter")
			return
		}
		psychologistID = parsed
	}

	resp, err := h.appointmentService.AvailableSlots(c.Request.Context(), psychologistID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
