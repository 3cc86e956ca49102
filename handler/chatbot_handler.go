package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/service"
)

type ChatbotHandler struct {
	dialogueService *service.DialogueService
}

func NewChatbotHandler(dialogueService *service.DialogueService) *ChatbotHandler {
	return &ChatbotHandler{
		dialogueService: dialogueService,
	}
}

// Chat handles POST /chatbot: one user message in, the next question out.
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid chat request", err)
		return
	}

	resp, err := h.dialogueService.Reply(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "CHATBOT_FAILED", "Failed to process message", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Reset handles DELETE /chatbot/:session_id
func (h *ChatbotHandler) Reset(c *gin.Context) {
	if err := h.dialogueService.Reset(c.Request.Context(), c.Param("session_id")); err != nil {
		writeError(c, http.StatusInternalServerError, "CHATBOT_FAILED", "Failed to reset session", err)
		return
	}
	c.Status(http.StatusNoContent)
}
