package dto

// ShareStateDTO describes the publish state of an artifact.
type ShareStateDTO struct {
	Shared  bool   `json:"shared"`
	ShareID string `json:"shareId,omitempty"`
	URL     string `json:"url,omitempty"`
}
