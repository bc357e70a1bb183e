package domain

import (
	"time"

	"github.com/google/uuid"
)

// RelationDirection is the closed set of evidence directions. Legacy synonym
// labels ("positive", "negative", ...) must be normalized by the persistence
// layer before relations reach this package; anything else is malformed.
type RelationDirection string

const (
	DirectionSupports    RelationDirection = "supports"
	DirectionContradicts RelationDirection = "contradicts"
)

func ValidDirection(d string) bool {
	switch RelationDirection(d) {
	case DirectionSupports, DirectionContradicts:
		return true
	}
	return false
}

// Role is the semantic position an entity occupies within a relation,
// e.g. "agent" or "target".
type Role struct {
	RelationID uuid.UUID `json:"relation_id"`
	EntityID   uuid.UUID `json:"entity_id"`
	RoleType   string    `json:"role_type"`
}

// Relation is an asserted link between entities, attributed to exactly one
// source, with a direction and a confidence in [0,1]. Scope is a flat map of
// exact-match qualifiers ("population" -> "adults").
type Relation struct {
	ID         uuid.UUID         `json:"id"`
	SourceID   uuid.UUID         `json:"source_id"`
	Kind       string            `json:"kind"`
	Direction  RelationDirection `json:"direction"`
	Confidence float64           `json:"confidence"`
	Scope      map[string]string `json:"scope,omitempty"`
	Roles      []Role            `json:"roles"`
	Source     *Source           `json:"source,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Weight is the relation's evidence weight: source trust times assertion
// confidence.
func (r *Relation) Weight() float64 {
	return r.Source.Trust() * r.Confidence
}

// HasRole reports whether the relation places the given entity in the given
// role.
func (r *Relation) HasRole(entityID uuid.UUID, roleType string) bool {
	for _, role := range r.Roles {
		if role.EntityID == entityID && role.RoleType == roleType {
			return true
		}
	}
	return false
}
