package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"estatecore/internal/model"
	"estatecore/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles the chat widget's API requests
type ChatHandler struct {
	router *service.ChatRouter
}

// NewChatHandler creates a new chat handler
func NewChatHandler(router *service.ChatRouter) *ChatHandler {
	return &ChatHandler{router: router}
}

// Chat handles POST /api/chat. Every outcome carries a user-facing
// message field: 400 for malformed bodies, 500 with a localized apology
// for anything unexpected, 200 otherwise.
func (h *ChatHandler) Chat(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ChatResponse{
			Message: "Could not read the request body.",
			Error:   err.Error(),
		})
		return
	}

	// The raw body survives for the recovery path, where the parsed
	// request may not exist and the language has to be re-detected.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Error: chat handler panic: %v", r)
			language := service.DetectLanguage(string(body))
			resp := service.FallbackResponse(language)
			resp.Error = "internal error"
			c.JSON(http.StatusInternalServerError, resp)
		}
	}()

	var req model.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, model.ChatResponse{
			Message: "Invalid request: messages must be an array of {role, content} objects.",
			Error:   err.Error(),
		})
		return
	}
	if req.Messages == nil {
		c.JSON(http.StatusBadRequest, model.ChatResponse{
			Message: "Invalid request: messages must be an array of {role, content} objects.",
			Error:   "messages field is missing or not an array",
		})
		return
	}

	resp := h.router.Respond(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}
