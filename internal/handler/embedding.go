package handler

import (
	"fmt"
	"net/http"

	"estatecore/internal/model"
	"estatecore/internal/repository"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler handles embedding maintenance requests
type EmbeddingHandler struct {
	repo         *repository.PostgresRepository
	embeddingDim int
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(repo *repository.PostgresRepository, embeddingDim int) *EmbeddingHandler {
	return &EmbeddingHandler{repo: repo, embeddingDim: embeddingDim}
}

// BatchUpdate handles POST /api/embeddings/batch
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	for i, item := range req.Embeddings {
		if len(item.Embedding) != h.embeddingDim {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid embedding dimension at index %d: got %d, expected %d",
					i, len(item.Embedding), h.embeddingDim),
			})
			return
		}
	}

	success, errors := h.repo.BatchUpdateEmbeddings(c.Request.Context(), req.Embeddings)

	response := model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(req.Embeddings) - success,
		Errors:  errors,
	}

	if len(errors) > 0 {
		c.JSON(http.StatusPartialContent, response)
	} else {
		c.JSON(http.StatusOK, response)
	}
}
