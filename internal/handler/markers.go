package handler

import (
	"log"
	"net/http"
	"strconv"

	"estatecore/internal/cache"
	"estatecore/internal/config"
	"estatecore/internal/geo"
	"estatecore/internal/mapengine"
	"estatecore/internal/model"
	"estatecore/internal/reelly"

	"github.com/gin-gonic/gin"
)

// MarkersHandler serves the clustered map data: normalized markers, the
// cluster set for the requested zoom, and the optional heat overlay.
type MarkersHandler struct {
	feed        *reelly.Client
	cache       *cache.MarkerCache
	clusterOpts geo.ClusterOptions
	heatFloor   float64
}

// NewMarkersHandler creates a new markers handler
func NewMarkersHandler(feed *reelly.Client, markerCache *cache.MarkerCache, mapCfg *config.MapConfig) *MarkersHandler {
	return &MarkersHandler{
		feed:  feed,
		cache: markerCache,
		clusterOpts: geo.ClusterOptions{
			RadiusPx:      mapCfg.ClusterRadiusPx,
			DeclusterZoom: mapCfg.DeclusterZoom,
			MaxZoom:       mapCfg.MaxZoom,
		},
		heatFloor: mapCfg.HeatFloor,
	}
}

// markersResponse is the map payload for one filter/zoom combination.
type markersResponse struct {
	Markers  []model.MapMarker `json:"markers"`
	Clusters []model.Cluster   `json:"clusters"`
	Heat     []model.HeatPoint `json:"heat,omitempty"`
	Zoom     int               `json:"zoom"`
}

// List handles GET /api/markers?bedrooms=&min_price=&max_price=&zoom=&heatmap=
func (h *MarkersHandler) List(c *gin.Context) {
	var query reelly.MarkerQuery
	if raw := c.Query("bedrooms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bedrooms parameter"})
			return
		}
		query.Bedrooms = &n
	}
	if raw := c.Query("min_price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price parameter"})
			return
		}
		query.MinPrice = &f
	}
	if raw := c.Query("max_price"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price parameter"})
			return
		}
		query.MaxPrice = &f
	}

	zoom := 10
	if raw := c.Query("zoom"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zoom parameter"})
			return
		}
		zoom = n
	}
	showHeat := c.Query("heatmap") == "true"

	ctx := c.Request.Context()
	key := cache.Key(query.Bedrooms, query.MinPrice, query.MaxPrice)
	markers := h.cache.Get(ctx, key)
	if markers == nil {
		records, err := h.feed.Markers(ctx, query)
		if err != nil {
			log.Printf("Error: marker feed fetch failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Marker feed unavailable"})
			return
		}
		markers = reelly.ToMarkers(records)
		h.cache.Set(ctx, key, markers)
	}

	engine := mapengine.New(mapengine.Options{
		Properties:  markers,
		ShowHeatmap: showHeat,
		HeatFloor:   h.heatFloor,
	}, h.clusterOpts)
	engine.SetZoom(zoom)

	c.JSON(http.StatusOK, markersResponse{
		Markers:  markers,
		Clusters: engine.Clusters(),
		Heat:     engine.HeatPoints(),
		Zoom:     engine.Zoom(),
	})
}
