package reelly

import (
	"estatecore/internal/geo"
	"estatecore/internal/mapengine"
	"estatecore/internal/model"
	"estatecore/internal/utils"
)

// placeholderImage stands in for listings whose record carries no usable
// image field.
const placeholderImage = "/static/img/placeholder-property.svg"

// ToMarkers normalizes raw feed records into map markers. Records that
// yield no coordinates are kept with nil axes; rendering filters them out
// downstream.
func ToMarkers(records []map[string]interface{}) []model.MapMarker {
	markers := make([]model.MapMarker, 0, len(records))
	for _, record := range records {
		markers = append(markers, toMarker(record))
	}
	return markers
}

func toMarker(record map[string]interface{}) model.MapMarker {
	marker := model.MapMarker{
		ID:       toInt64(firstValue(record, "id", "property_id")),
		Title:    toString(firstValue(record, "name", "title", "project_name")),
		Location: toString(firstValue(record, "area", "location", "district")),
		Status:   toString(firstValue(record, "status", "sale_status")),
	}

	coords := geo.ExtractCoordinates(record)
	marker.Lat = coords.Lat
	marker.Lng = coords.Lng

	if price, ok := utils.ParsePriceValue(firstValue(record, "min_price", "price", "unit_price_from")); ok {
		marker.Price = price
		marker.PriceLabel = "AED " + utils.FormatPrice(price)
	}
	if bedrooms, ok := utils.ParsePriceValue(firstValue(record, "bedrooms", "unit_bedrooms")); ok {
		n := int(bedrooms)
		marker.Bedrooms = &n
	}
	if bathrooms, ok := utils.ParsePriceValue(firstValue(record, "bathrooms", "unit_bathrooms")); ok {
		n := int(bathrooms)
		marker.Bathrooms = &n
	}
	if area, ok := utils.ParsePriceValue(firstValue(record, "area_sqft", "unit_area_from")); ok {
		marker.AreaSqft = &area
	}

	if images := mapengine.ExtractImages(record); len(images) > 0 {
		marker.Image = images[0]
	} else {
		marker.Image = placeholderImage
	}

	return marker
}

// ToDetail normalizes a raw detail record into the popup shape, including
// the extracted image list.
func ToDetail(id int64, record map[string]interface{}) model.PropertyDetail {
	detail := model.PropertyDetail{
		ID:          id,
		Name:        toString(firstValue(record, "name", "title", "project_name")),
		Developer:   toString(firstValue(record, "developer", "developer_name")),
		Area:        toString(firstValue(record, "area", "location", "district")),
		Description: toString(firstValue(record, "overview", "description")),
		Images:      mapengine.ExtractImages(record),
	}

	if price, ok := utils.ParsePriceValue(firstValue(record, "min_price", "price")); ok {
		detail.Price = price
		detail.PriceLabel = "AED " + utils.FormatPrice(price)
	}
	if len(detail.Images) > 0 {
		detail.CoverImage = detail.Images[0]
	} else {
		detail.CoverImage = placeholderImage
	}
	return detail
}

func firstValue(record map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func toString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		if n, ok := utils.ParsePriceValue(v); ok {
			return int64(n)
		}
	}
	return 0
}
