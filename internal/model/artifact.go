package model

import (
	"encoding/json"
	"time"
)

// Artifact is one persisted generated outline together with its
// ownership and share state. Sermon holds the stored content verbatim
// so reads round-trip exactly what was written; ParseOutline is the
// boundary where structure is enforced.
type Artifact struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Prompt    string          `db:"prompt" json:"-"`
	Sermon    json.RawMessage `db:"content" json:"sermon"`
	Metadata  SermonMetadata  `db:"metadata" json:"metadata"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	ShareID   *string         `db:"share_uuid" json:"share_id,omitempty"`
}
