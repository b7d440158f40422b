package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/chat"
	"github.com/Harshaaa-a/finbuddychatbot-sub001/internal/model"
)

type ChatService interface {
	Respond(ctx context.Context, message string) model.ChatResponse
}

type ChatHandler struct {
	service ChatService
}

func NewChatHandler(service ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// PostChat handles one chat request. Malformed input maps to 400; everything
// past validation returns 200 with success:false on failure, since the
// pipeline never throws past its own boundary.
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == nil {
		c.JSON(http.StatusBadRequest, ChatResponse{
			Success: false,
			Error:   chat.ErrMessageRequired.Error(),
		})
		return
	}

	if err := chat.Validate(*req.Message); err != nil {
		c.JSON(http.StatusBadRequest, ChatResponse{Success: false, Error: err.Error()})
		return
	}

	resp := h.service.Respond(c.Request.Context(), *req.Message)
	c.JSON(http.StatusOK, ChatResponse{
		Success: resp.Success,
		Message: resp.Message,
		Error:   resp.Error,
	})
}
