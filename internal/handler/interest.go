package handler

import (
	"net/http"

	"estatecore/internal/model"
	"estatecore/internal/repository"

	"github.com/gin-gonic/gin"
)

// InterestHandler handles "set interest" lead submissions from the map
// popup's call-to-action.
type InterestHandler struct {
	repo *repository.PostgresRepository
}

// NewInterestHandler creates a new interest handler
func NewInterestHandler(repo *repository.PostgresRepository) *InterestHandler {
	return &InterestHandler{repo: repo}
}

// Submit handles POST /api/interest
func (h *InterestHandler) Submit(c *gin.Context) {
	var req model.InterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Phone == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a phone number or an email so the agent can reach you"})
		return
	}

	if err := h.repo.LogInterest(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record interest: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.InterestResponse{
		Success: true,
		Message: "Thank you, the agent will contact you shortly",
	})
}
