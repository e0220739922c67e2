package handler

import (
	messagingapp "github.com/Vitorafonso317/lunysse-backend/internal/application/messaging"
	"github.com/gin-gonic/gin"
)

// MessageHandler handles messaging endpoints
type MessageHandler struct {
	BaseHandler
	messageService *messagingapp.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *messagingapp.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send delivers a message to a user the caller has a clinical
// relationship with
func (h *MessageHandler) Send(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req messagingapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.messageService.Send(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Conversations lists the caller's conversations with unread counts
func (h *MessageHandler) Conversations(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.messageService.Conversations(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Conversation returns the full exchange with a peer and marks the
// caller's received messages read
func (h *MessageHandler) Conversation(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	peerID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.messageService.Conversation(c.Request.Context(), principal, peerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkRead marks a single received message as read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	messageID, ok := h.bindUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.messageService.MarkRead(c.Request.Context(), principal, messageID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UnreadCount returns the caller's total unread message count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.messageService.UnreadCount(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Contacts lists the users the caller is allowed to message
func (h *MessageHandler) Contacts(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.messageService.Contacts(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
