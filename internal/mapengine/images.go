// Package mapengine drives the interactive map surface: selection state,
// popup detail loading, the image lightbox and cluster/heat composition.
package mapengine

import (
	"strings"

	"estatecore/internal/utils"
)

// imageFieldOrder is the fixed fallback order for pulling a gallery out of
// a detail payload. Fields are tried until one yields at least one URL.
var imageFieldOrder = []string{
	"cover_image",
	"architecture",
	"interior",
	"lobby",
	"master_plan",
	"unit_blocks",
}

// urlKeys are the attribute names that may carry an image URL inside a
// nested object element.
var urlKeys = []string{"url", "image_url", "image", "typical_unit_image_url"}

// ExtractImages pulls a flat image-URL list from a raw detail payload.
// Upstream mixes native arrays, JSON-encoded array strings and object
// wrappers; each candidate field is decoded leniently and the first one
// that yields URLs wins. An unusable payload yields nil, never an error.
func ExtractImages(detail map[string]interface{}) []string {
	if detail == nil {
		return nil
	}
	for _, field := range imageFieldOrder {
		value, ok := detail[field]
		if !ok || value == nil {
			continue
		}
		if urls := decodeImageField(value); len(urls) > 0 {
			return urls
		}
	}
	return nil
}

func decodeImageField(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		var urls []string
		for _, item := range v {
			switch elem := item.(type) {
			case string:
				if elem != "" {
					urls = append(urls, elem)
				}
			case map[string]interface{}:
				if url := urlFromObject(elem); url != "" {
					urls = append(urls, url)
				}
			}
		}
		return urls
	case map[string]interface{}:
		if url := urlFromObject(v); url != "" {
			return []string{url}
		}
		return nil
	case string:
		if strings.HasPrefix(v, "[") || strings.HasPrefix(v, "```") {
			return utils.DecodeStringList(v)
		}
		if strings.HasPrefix(v, "http") {
			return []string{v}
		}
		return nil
	}
	return nil
}

func urlFromObject(obj map[string]interface{}) string {
	for _, key := range urlKeys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
