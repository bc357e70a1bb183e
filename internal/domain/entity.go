package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is a node in the knowledge graph. Entities carry no belief state of
// their own; everything we believe about an entity is derived from the
// Relations it participates in.
type Entity struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
