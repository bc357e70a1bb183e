package domain

import (
	"context"

	"github.com/google/uuid"
)

// EvidenceStore is the read-only snapshot interface the inference engine
// consumes. Relations must come back in creation order with their Source and
// Roles resolved; creation order is what makes attribution tie-breaks stable.
// The engine never writes; records are owned by the persistence layer.
type EvidenceStore interface {
	GetEntity(ctx context.Context, id uuid.UUID) (*Entity, error)
	GetIncidentRelations(ctx context.Context, entityID uuid.UUID) ([]Relation, error)
}
