package dto

import (
	"encoding/json"
	"time"
)

// GenerateSermonDTO is the incoming generation request.
type GenerateSermonDTO struct {
	Category string `json:"category" validate:"required"`
	Theme    string `json:"theme" validate:"required"`
	Depth    string `json:"depth"`
	UserID   string `json:"userId"`
}

type UsageDTO struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// MetadataDTO mirrors the artifact metadata in API responses.
type MetadataDTO struct {
	Type      string `json:"type"`
	Category  string `json:"category"`
	Theme     string `json:"theme"`
	Depth     string `json:"depth"`
	Generator string `json:"generator,omitempty"`
}

// SermonResponseDTO is returned by generation, the owner read path and
// the public share path. UserID and Usage are omitted where the
// endpoint does not expose them.
type SermonResponseDTO struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UserID    string          `json:"userId,omitempty"`
	Usage     *UsageDTO       `json:"usage,omitempty"`
	Sermon    json.RawMessage `json:"sermon"`
	Metadata  MetadataDTO     `json:"metadata"`
}
