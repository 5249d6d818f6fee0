package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/malik80-glitch/accsolver/internal/intent"
	"github.com/malik80-glitch/accsolver/internal/models"
	"github.com/malik80-glitch/accsolver/internal/session"
)

// ChatService is the conversation entry point consumed by the handlers.
type ChatService interface {
	Send(ctx context.Context, text string, att *models.Attachment) models.Message
}

// Handler wires HTTP routes to the chat service and session store.
type Handler struct {
	chat  ChatService
	store *session.Store
}

// NewHandler constructs a Handler instance.
func NewHandler(chat ChatService, store *session.Store) *Handler {
	return &Handler{chat: chat, store: store}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	conversation := api.Group("/conversation")
	conversation.POST("/msg", h.sendMessage)
	conversation.GET("/messages", h.listMessages)
	conversation.POST("/reset", h.resetConversation)
	conversation.POST("/topic", h.setTopic)
	conversation.GET("/status", h.getStatus)
	api.POST("/draft/intent", h.toggleIntent)
}

type sendMessageRequest struct {
	Content    string             `json:"content"`
	Attachment *models.Attachment `json:"attachment"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Content == "" && req.Attachment == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content or attachment is required"})
		return
	}
	if h.store.IsBusy() {
		c.JSON(http.StatusConflict, gin.H{"error": "a request is already in flight"})
		return
	}
	reply := h.chat.Send(c.Request.Context(), req.Content, req.Attachment)
	c.JSON(http.StatusOK, reply)
}

func (h *Handler) listMessages(c *gin.Context) {
	messages := session.Filter(h.store.Messages(), c.Query("search"))
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) resetConversation(c *gin.Context) {
	h.store.Reset(c.Request.Context())
	c.Status(http.StatusNoContent)
}

type setTopicRequest struct {
	Topic string `json:"topic"`
}

func (h *Handler) setTopic(c *gin.Context) {
	var req setTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.store.SetTopic(req.Topic)
	c.Status(http.StatusNoContent)
}

func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"is_busy":       h.store.IsBusy(),
		"is_saving":     h.store.IsSaving(),
		"active_topic":  h.store.ActiveTopic(),
		"message_count": len(h.store.Messages()),
	})
}

type toggleIntentRequest struct {
	Draft  string `json:"draft"`
	Intent string `json:"intent"`
}

// toggleIntent round-trips a draft through the canonical prefix toggle so
// the input surface never manipulates prefixes itself.
func (h *Handler) toggleIntent(c *gin.Context) {
	var req toggleIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	kind, err := intent.Parse(req.Intent)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": intent.Toggle(req.Draft, kind)})
}
