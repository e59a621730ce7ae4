package mapengine

import (
	"context"
	"log"
	"sync"

	"estatecore/internal/geo"
	"estatecore/internal/model"
)

// Options configures one map engine instance, mirroring what host pages
// pass in: the marker set, overlay switches and the selection/interest
// callbacks the host handles beyond the popup itself.
type Options struct {
	Properties        []model.MapMarker
	ShowHeatmap       bool
	HideInlineDetails bool

	// HeatFloor is the overlay intensity for unpriced markers. Non-positive
	// values fall back to geo.DefaultHeatFloor.
	HeatFloor float64
	OnPropertySelect  func(id int64)
	OnSetInterest     func(detail model.PropertyDetail)

	// FetchDetails loads popup details asynchronously. Optional.
	FetchDetails DetailFetchFunc

	// HeatCapability resolves whether heat rendering is available. It is
	// consulted once at construction and cached; when it reports false the
	// heat overlay is omitted without blocking marker rendering. Nil means
	// available.
	HeatCapability func() bool
}

const defaultZoom = 10

// Engine composes the map surface: clustered markers, the optional heat
// overlay, and a single popup/lightbox selection.
type Engine struct {
	mu sync.Mutex

	opts        Options
	clusterOpts geo.ClusterOptions
	heatEnabled bool

	zoom     int
	markers  []model.MapMarker
	clusters []model.Cluster
	heat     []model.HeatPoint

	selector *Selector
	lightbox Lightbox
}

// New builds an engine over the initial marker set. The heat capability is
// resolved once here and cached for the engine's lifetime.
func New(opts Options, clusterOpts geo.ClusterOptions) *Engine {
	if clusterOpts.RadiusPx <= 0 {
		clusterOpts = geo.DefaultClusterOptions()
	}

	heatEnabled := opts.ShowHeatmap
	if heatEnabled && opts.HeatCapability != nil && !opts.HeatCapability() {
		log.Println("Warning: heat rendering unavailable, overlay omitted")
		heatEnabled = false
	}

	e := &Engine{
		opts:        opts,
		clusterOpts: clusterOpts,
		heatEnabled: heatEnabled,
		zoom:        defaultZoom,
		selector:    NewSelector(opts.FetchDetails, opts.OnPropertySelect),
	}
	e.rebuild(opts.Properties)
	return e
}

// SetProperties replaces the marker set, as after a filter change, and
// rebuilds both the cluster group and the heat overlay from scratch.
func (e *Engine) SetProperties(markers []model.MapMarker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuild(markers)
}

func (e *Engine) rebuild(markers []model.MapMarker) {
	e.markers = markers
	e.clusters = geo.ClusterMarkers(markers, e.zoom, e.clusterOpts)
	if e.heatEnabled {
		e.heat = geo.BuildHeatPoints(markers, e.opts.HeatFloor)
	} else {
		e.heat = nil
	}
}

// SetZoom reclusters the current marker set at the new zoom level.
func (e *Engine) SetZoom(zoom int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if zoom < 0 {
		zoom = 0
	}
	if zoom > e.clusterOpts.MaxZoom {
		zoom = e.clusterOpts.MaxZoom
	}
	e.zoom = zoom
	e.clusters = geo.ClusterMarkers(e.markers, zoom, e.clusterOpts)
}

// Zoom returns the current zoom level.
func (e *Engine) Zoom() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoom
}

// Clusters returns the cluster set for the current zoom.
func (e *Engine) Clusters() []model.Cluster {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clusters
}

// HeatPoints returns the heat overlay, or nil when it is disabled or the
// capability is unavailable.
func (e *Engine) HeatPoints() []model.HeatPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.heat
}

// ClickMarker selects the marker with the given id: the previous selection
// is cleared, a loading popup opens immediately and the detail fetch
// starts. Unknown ids are ignored.
func (e *Engine) ClickMarker(ctx context.Context, id int64) {
	e.mu.Lock()
	var target *model.MapMarker
	for i := range e.markers {
		if e.markers[i].ID == id {
			target = &e.markers[i]
			break
		}
	}
	e.mu.Unlock()

	if target == nil {
		return
	}
	// Opening a new popup implicitly closes the previous one.
	e.closePopupState()
	e.selector.Select(ctx, *target)
}

// ClickCluster resolves a cluster click to its best child: zoom in until
// that child renders individually, then open its detail popup. The click
// lands on a property, never just a zoomed map.
func (e *Engine) ClickCluster(ctx context.Context, cluster model.Cluster, clickLat, clickLng *float64) {
	e.mu.Lock()
	fromZoom := e.zoom
	opts := e.clusterOpts
	e.mu.Unlock()

	child, targetZoom := geo.ResolveClusterClick(cluster, clickLat, clickLng, fromZoom, opts)
	if child.ID == 0 {
		return
	}
	e.SetZoom(targetZoom)
	e.ClickMarker(ctx, child.ID)
}

// OpenLightbox opens the lightbox at the cover image (index 0) of the
// loaded popup details. A popup without images is a no-op.
func (e *Engine) OpenLightbox() {
	snap := e.selector.Snapshot()
	if snap.State != StateLoaded || snap.Details == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lightbox.Open(snap.Details.Images, 0)
}

// Lightbox exposes the lightbox for navigation and zoom.
func (e *Engine) Lightbox() *Lightbox {
	return &e.lightbox
}

// ClosePopup handles every popup close path: explicit close, the map's own
// close event, or a new popup opening. The lightbox closes with its zoom
// and index reset, and the selected visual clears.
func (e *Engine) ClosePopup() {
	e.closePopupState()
	e.selector.Close()
}

func (e *Engine) closePopupState() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lightbox.Close()
}

// Selection returns the current popup snapshot.
func (e *Engine) Selection() Snapshot {
	return e.selector.Snapshot()
}

// Selector exposes the selection state machine.
func (e *Engine) Selector() *Selector {
	return e.selector
}

// SetInterest forwards the loaded property to the host's interest
// callback, the popup's call-to-action. No-op before details load.
func (e *Engine) SetInterest() {
	snap := e.selector.Snapshot()
	if snap.State != StateLoaded || snap.Details == nil || e.opts.OnSetInterest == nil {
		return
	}
	e.opts.OnSetInterest(*snap.Details)
}
