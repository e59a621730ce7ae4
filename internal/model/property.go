package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Property represents a property listing in the catalog
type Property struct {
	ID          int64           `json:"id" db:"id"`
	Title       *string         `json:"title,omitempty" db:"title"`
	Developer   *string         `json:"developer,omitempty" db:"developer"`
	Price       *float64        `json:"price,omitempty" db:"price"`
	Bedrooms    *int            `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms   *int            `json:"bathrooms,omitempty" db:"bathrooms"`
	AreaSqft    *float64        `json:"area_sqft,omitempty" db:"area_sqft"`
	UnitType    *string         `json:"unit_type,omitempty" db:"unit_type"`
	Status      *string         `json:"status,omitempty" db:"status"`
	Location    *string         `json:"location,omitempty" db:"location"`
	Latitude    *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64        `json:"longitude,omitempty" db:"longitude"`
	CoverImage  *string         `json:"cover_image,omitempty" db:"cover_image"`
	Images      JSONArray       `json:"images,omitempty" db:"images"`
	Description *string         `json:"description,omitempty" db:"description"`
	ListedDate  *time.Time      `json:"listed_date,omitempty" db:"listed_date"`
	Embedding   pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// PropertyPreview is the compact listing shape returned inline with chat
// responses and similar-property lookups.
type PropertyPreview struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price,omitempty"`
	Bedrooms *int    `json:"bedrooms,omitempty"`
	Location string  `json:"location,omitempty"`
	Image    string  `json:"image,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// PropertyDetail is the full detail shape consumed by the map popup.
type PropertyDetail struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Developer   string   `json:"developer,omitempty"`
	Area        string   `json:"area,omitempty"`
	Price       float64  `json:"price,omitempty"`
	PriceLabel  string   `json:"price_label,omitempty"`
	Description string   `json:"description,omitempty"`
	CoverImage  string   `json:"cover_image,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// ToCurrentFormat adapts a catalog row into the preview shape used across
// the API surface. Missing fields degrade to zero values, never errors.
func (p Property) ToCurrentFormat() PropertyPreview {
	preview := PropertyPreview{ID: p.ID, Bedrooms: p.Bedrooms}
	if p.Title != nil {
		preview.Title = *p.Title
	}
	if p.Price != nil {
		preview.Price = *p.Price
	}
	if p.Location != nil {
		preview.Location = *p.Location
	}
	if p.Status != nil {
		preview.Status = *p.Status
	}
	if p.CoverImage != nil {
		preview.Image = *p.CoverImage
	} else if len(p.Images) > 0 {
		preview.Image = p.Images[0]
	}
	return preview
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding with property info
type EmbeddingItem struct {
	PropertyID int64     `json:"property_id" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
	Text       string    `json:"text,omitempty"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// InterestRequest represents a "set interest" lead submitted from the map
// popup's call-to-action.
type InterestRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Source     string `json:"source,omitempty"`
}

// InterestResponse represents the lead capture response
type InterestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
