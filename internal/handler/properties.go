package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"estatecore/internal/config"
	"estatecore/internal/model"
	"estatecore/internal/reelly"
	"estatecore/internal/utils"

	"github.com/gin-gonic/gin"
)

// similarLimit caps the similar-property strip on the detail payload.
const similarLimit = 6

// PropertyCatalog is the repository surface the properties handler reads.
type PropertyCatalog interface {
	GetProperties(ctx context.Context, filters *model.SearchFilters, limit, offset int) ([]model.Property, int, error)
	GetPropertyByID(ctx context.Context, id int64) (*model.Property, error)
	SimilarProperties(ctx context.Context, id int64, limit int) ([]model.Property, error)
}

// PropertiesHandler serves catalog listing and property detail lookups for
// the map popup and the listing pages.
type PropertiesHandler struct {
	repo      PropertyCatalog
	feed      *reelly.Client
	searchCfg *config.SearchConfig
}

// NewPropertiesHandler creates a new properties handler
func NewPropertiesHandler(repo PropertyCatalog, feed *reelly.Client, searchCfg *config.SearchConfig) *PropertiesHandler {
	return &PropertiesHandler{repo: repo, feed: feed, searchCfg: searchCfg}
}

// propertyListResponse is the paged catalog payload.
type propertyListResponse struct {
	Properties []model.PropertyPreview `json:"properties"`
	Total      int                     `json:"total"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
}

// List handles GET /api/properties, the paged catalog behind the listing
// page: type/bedrooms/price/location filters plus limit/offset paging.
func (h *PropertiesHandler) List(c *gin.Context) {
	filters := &model.SearchFilters{}
	if raw := c.Query("type"); raw != "" {
		filters.Type = &raw
	}
	if raw := c.Query("location"); raw != "" {
		filters.Location = &raw
	}
	if raw := c.Query("bedrooms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bedrooms parameter"})
			return
		}
		filters.Bedrooms = &n
	}
	if raw := c.Query("min_price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price parameter"})
			return
		}
		filters.MinPrice = &f
	}
	if raw := c.Query("max_price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price parameter"})
			return
		}
		filters.MaxPrice = &f
	}

	limit := h.searchCfg.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = n
	}
	if limit > h.searchCfg.MaxLimit {
		limit = h.searchCfg.MaxLimit
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter"})
			return
		}
		offset = n
	}

	properties, total, err := h.repo.GetProperties(c.Request.Context(), filters, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties: " + err.Error()})
		return
	}

	resp := propertyListResponse{
		Properties: make([]model.PropertyPreview, 0, len(properties)),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}
	for _, p := range properties {
		resp.Properties = append(resp.Properties, p.ToCurrentFormat())
	}
	c.JSON(http.StatusOK, resp)
}

// propertyDetailResponse is the detail payload plus the similar strip.
type propertyDetailResponse struct {
	model.PropertyDetail
	Similar []model.PropertyPreview `json:"similar,omitempty"`
}

// Get handles GET /api/properties/:id. Catalog rows win; ids unknown to
// the catalog fall through to the external feed before a 404.
func (h *PropertiesHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	ctx := c.Request.Context()

	property, err := h.repo.GetPropertyByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property: " + err.Error()})
		return
	}

	var detail model.PropertyDetail
	if property != nil {
		detail = detailFromCatalog(property)
	} else {
		record, feedErr := h.feed.Property(ctx, id)
		if feedErr != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		detail = reelly.ToDetail(id, record)
	}

	resp := propertyDetailResponse{PropertyDetail: detail}
	if property != nil {
		similar, simErr := h.repo.SimilarProperties(ctx, id, similarLimit)
		if simErr != nil {
			log.Printf("Warning: similar-property lookup failed for %d: %v", id, simErr)
		}
		for _, s := range similar {
			resp.Similar = append(resp.Similar, s.ToCurrentFormat())
		}
	}

	c.JSON(http.StatusOK, resp)
}

func detailFromCatalog(p *model.Property) model.PropertyDetail {
	detail := model.PropertyDetail{ID: p.ID, Images: []string(p.Images)}
	if p.Title != nil {
		detail.Name = *p.Title
	}
	if p.Developer != nil {
		detail.Developer = *p.Developer
	}
	if p.Location != nil {
		detail.Area = *p.Location
	}
	if p.Description != nil {
		detail.Description = *p.Description
	}
	if p.Price != nil {
		detail.Price = *p.Price
		detail.PriceLabel = "AED " + utils.FormatPrice(*p.Price)
	}
	if p.CoverImage != nil {
		detail.CoverImage = *p.CoverImage
	} else if len(detail.Images) > 0 {
		detail.CoverImage = detail.Images[0]
	}
	return detail
}
