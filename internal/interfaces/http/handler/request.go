package handler

import (
	intakeapp "github.com/Vitorafonso317/lunysse-backend/internal/application/intake"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/intake"
	"github.com/gin-gonic/gin"
)

// RequestHandler handles intake request endpoints
type RequestHandler struct {
	BaseHandler
	requestService *intakeapp.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService *intakeapp.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Submit files a new intake request. The route is public so
// prospective patients can reach out before they have an account.
func (h *RequestHandler) Submit(c *gin.Context) {
	var req intakeapp.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.requestService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the caller's intake requests, newest first. Clinicians
// see their queue; patients see the requests they filed.
func (h *RequestHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.requestService.List(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one intake request
func (h *RequestHandler) Get(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	requestID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.requestService.Get(c.Request.Context(), principal.ID, requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Decide accepts or rejects a pending request
func (h *RequestHandler) Decide(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	requestID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req intakeapp.DecideRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.requestService.Decide(c.Request.Context(), principal.ID, requestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Accept is a shortcut for accepting a pending request
func (h *RequestHandler) Accept(c *gin.Context) {
	principal, ok := h.requirePsychologist(c)
	if !ok {
		return
	}
	requestID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	req := intakeapp.DecideRequestRequest{Status: string(intake.StatusAccepted)}
	resp, err := h.requestService.Decide(c.Request.Context(), principal.ID, requestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
