package handlers

import (
	"net/http"

	"healthcare-plus/internal/logger"
	"healthcare-plus/internal/models"
	"healthcare-plus/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// defaultSessionID is used for clients that never send a sessionId; they
// all share one conversation.
const defaultSessionID = "default"

type ChatHandler struct {
	store *services.ConversationStore
	ai    services.ChatCompleter
	text  services.TextGenerator
}

func NewChatHandler(store *services.ConversationStore, ai services.ChatCompleter, text services.TextGenerator) *ChatHandler {
	return &ChatHandler{store: store, ai: ai, text: text}
}

func (h *ChatHandler) MentalHealthChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	history := h.store.AppendUser(sessionID, req.Message)

	reply, err := h.ai.Chat(c.Request.Context(), history)
	if err != nil {
		logger.WithError(err).Error("Chat completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your message"})
		return
	}

	h.store.AppendAssistant(sessionID, reply)

	logger.WithFields(logrus.Fields{
		"sessionId":     sessionID,
		"historyLength": len(h.store.History(sessionID)),
	}).Debug("Chat turn completed")

	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}

// Test is the liveness probe: one cheap round trip to the text model.
func (h *ChatHandler) Test(c *gin.Context) {
	aiResponse, err := h.text.CreateCompletion(c.Request.Context(), "Respond with a short confirmation that you are online.")
	if err != nil {
		logger.WithError(err).Error("Test completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI model is not reachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Server is running",
		"aiResponse": aiResponse,
	})
}
