package geo

import (
	"math"

	"estatecore/internal/model"
)

// ClusterOptions tunes the pixel-space clustering pass.
type ClusterOptions struct {
	RadiusPx      float64 // grouping radius in screen pixels
	DeclusterZoom int     // markers render individually from this zoom on
	MaxZoom       int     // spiderfy threshold for fully overlapping markers
}

// DefaultClusterOptions mirrors the production map tuning.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{RadiusPx: 40, DeclusterZoom: 14, MaxZoom: 18}
}

const tileSize = 256

// project converts a lat/lng pair into web-mercator pixel coordinates at
// the given zoom level.
func project(lat, lng float64, zoom int) (x, y float64) {
	scale := float64(tileSize) * math.Exp2(float64(zoom))
	x = (lng + 180) / 360 * scale

	sin := math.Sin(lat * math.Pi / 180)
	// Clamp to keep the mercator singularity out of the projection.
	sin = math.Max(-0.9999, math.Min(0.9999, sin))
	y = (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * scale
	return x, y
}

// BucketFor maps a child count to its cluster icon bucket.
func BucketFor(count int) string {
	switch {
	case count < 10:
		return model.BucketSmall
	case count < 20:
		return model.BucketMedium
	default:
		return model.BucketLarge
	}
}

// ClusterMarkers groups renderable markers within RadiusPx of each other at
// the given zoom. At DeclusterZoom and beyond every marker stands alone,
// except markers sharing the exact pixel at MaxZoom, which are grouped with
// the spiderfy flag so the display can fan them out.
func ClusterMarkers(markers []model.MapMarker, zoom int, opts ClusterOptions) []model.Cluster {
	if opts.RadiusPx <= 0 {
		opts = DefaultClusterOptions()
	}

	renderable := make([]model.MapMarker, 0, len(markers))
	for _, m := range markers {
		if m.Renderable() {
			renderable = append(renderable, m)
		}
	}
	if len(renderable) == 0 {
		return nil
	}

	if zoom >= opts.DeclusterZoom {
		return declustered(renderable, zoom, opts)
	}

	type bucket struct {
		x, y    float64
		members []model.MapMarker
	}
	var buckets []*bucket

	for _, m := range renderable {
		x, y := project(*m.Lat, *m.Lng, zoom)
		var target *bucket
		for _, b := range buckets {
			cx := b.x / float64(len(b.members))
			cy := b.y / float64(len(b.members))
			if math.Hypot(x-cx, y-cy) <= opts.RadiusPx {
				target = b
				break
			}
		}
		if target == nil {
			buckets = append(buckets, &bucket{x: x, y: y, members: []model.MapMarker{m}})
			continue
		}
		target.x += x
		target.y += y
		target.members = append(target.members, m)
	}

	clusters := make([]model.Cluster, 0, len(buckets))
	for _, b := range buckets {
		clusters = append(clusters, newCluster(b.members, false))
	}
	return clusters
}

// declustered emits singleton clusters, merging only markers that fully
// overlap at max zoom (those get the spiderfy flag).
func declustered(markers []model.MapMarker, zoom int, opts ClusterOptions) []model.Cluster {
	if zoom < opts.MaxZoom {
		clusters := make([]model.Cluster, 0, len(markers))
		for _, m := range markers {
			clusters = append(clusters, newCluster([]model.MapMarker{m}, false))
		}
		return clusters
	}

	groups := make(map[[2]float64][]model.MapMarker)
	var order [][2]float64
	for _, m := range markers {
		x, y := project(*m.Lat, *m.Lng, zoom)
		key := [2]float64{math.Round(x), math.Round(y)}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	clusters := make([]model.Cluster, 0, len(order))
	for _, key := range order {
		members := groups[key]
		clusters = append(clusters, newCluster(members, len(members) > 1))
	}
	return clusters
}

func newCluster(members []model.MapMarker, spiderfy bool) model.Cluster {
	var latSum, lngSum float64
	ids := make([]int64, len(members))
	for i, m := range members {
		latSum += *m.Lat
		lngSum += *m.Lng
		ids[i] = m.ID
	}
	n := float64(len(members))
	return model.Cluster{
		Lat:       latSum / n,
		Lng:       lngSum / n,
		Count:     len(members),
		Bucket:    BucketFor(len(members)),
		Spiderfy:  spiderfy,
		Members:   members,
		MemberIDs: ids,
	}
}

// ResolveClusterClick resolves a cluster click to a specific property. It
// picks the child nearest the click point (the first child when no point is
// given) and returns the lowest zoom, starting past fromZoom, at which that
// child renders individually. A cluster click must land the user on a
// property detail view, not just a zoomed map.
func ResolveClusterClick(cluster model.Cluster, clickLat, clickLng *float64, fromZoom int, opts ClusterOptions) (model.MapMarker, int) {
	if opts.RadiusPx <= 0 {
		opts = DefaultClusterOptions()
	}
	if len(cluster.Members) == 0 {
		return model.MapMarker{}, fromZoom
	}

	best := cluster.Members[0]
	if clickLat != nil && clickLng != nil {
		bestDist := math.Inf(1)
		for _, m := range cluster.Members {
			d := math.Hypot(*m.Lat-*clickLat, *m.Lng-*clickLng)
			if d < bestDist {
				bestDist = d
				best = m
			}
		}
	}

	for zoom := fromZoom + 1; zoom < opts.MaxZoom; zoom++ {
		if standsAlone(best, cluster.Members, zoom, opts) {
			return best, zoom
		}
	}
	return best, opts.MaxZoom
}

// standsAlone reports whether the marker would form its own cluster among
// the given peers at the zoom level.
func standsAlone(marker model.MapMarker, peers []model.MapMarker, zoom int, opts ClusterOptions) bool {
	if zoom >= opts.DeclusterZoom {
		return true
	}
	x, y := project(*marker.Lat, *marker.Lng, zoom)
	for _, p := range peers {
		if p.ID == marker.ID {
			continue
		}
		px, py := project(*p.Lat, *p.Lng, zoom)
		if math.Hypot(x-px, y-py) <= opts.RadiusPx {
			return false
		}
	}
	return true
}
