package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veracify/credence/internal/domain"
)

var ErrNotFound = errors.New("not found")

// EvidenceStore reads entity/relation/source snapshots from Postgres. It is
// strictly read-only: record creation and editing belong to the surrounding
// persistence layer, not to the inference engine this store feeds.
type EvidenceStore struct {
	db *pgxpool.Pool
}

func NewEvidenceStore(db *pgxpool.Pool) *EvidenceStore {
	return &EvidenceStore{db: db}
}

func (s *EvidenceStore) GetEntity(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	entity := &domain.Entity{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM entities WHERE id = $1`,
		id,
	).Scan(&entity.ID, &entity.Name, &entity.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get entity: %w", err)
	}
	return entity, nil
}

// GetIncidentRelations returns every relation that places the entity in any
// role, in creation order, with source and roles resolved. A relation whose
// source row is missing comes back with a nil Source; the engine excludes it
// and reports a diagnostic instead of failing the whole fetch.
func (s *EvidenceStore) GetIncidentRelations(ctx context.Context, entityID uuid.UUID) ([]domain.Relation, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.source_id, r.kind, r.direction, r.confidence, r.scope, r.created_at,
		        s.id, s.title, s.authors, s.year, s.kind, s.url, s.trust_level, s.created_at
		 FROM relations r
		 LEFT JOIN sources s ON s.id = r.source_id
		 WHERE r.id IN (SELECT relation_id FROM roles WHERE entity_id = $1)
		 ORDER BY r.created_at, r.id`,
		entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("get incident relations: %w", err)
	}
	defer rows.Close()

	var relations []domain.Relation
	for rows.Next() {
		var (
			rel          domain.Relation
			direction    string
			srcID        *uuid.UUID
			srcTitle     *string
			srcAuthors   *string
			srcYear      *int
			srcKind      *string
			srcURL       *string
			srcTrust     *float64
			srcCreatedAt *time.Time
		)
		if err := rows.Scan(
			&rel.ID, &rel.SourceID, &rel.Kind, &direction, &rel.Confidence, &rel.Scope, &rel.CreatedAt,
			&srcID, &srcTitle, &srcAuthors, &srcYear, &srcKind, &srcURL, &srcTrust, &srcCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		rel.Direction = domain.RelationDirection(direction)
		if srcID != nil {
			rel.Source = &domain.Source{
				ID:         *srcID,
				TrustLevel: srcTrust,
			}
			if srcTitle != nil {
				rel.Source.Title = *srcTitle
			}
			if srcAuthors != nil {
				rel.Source.Authors = *srcAuthors
			}
			if srcYear != nil {
				rel.Source.Year = *srcYear
			}
			if srcKind != nil {
				rel.Source.Kind = *srcKind
			}
			if srcURL != nil {
				rel.Source.URL = *srcURL
			}
			if srcCreatedAt != nil {
				rel.Source.CreatedAt = *srcCreatedAt
			}
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relations: %w", err)
	}

	if err := s.attachRoles(ctx, relations); err != nil {
		return nil, err
	}
	return relations, nil
}

// attachRoles loads the roles for every relation in one query and attaches
// them in place, preserving the relations' order.
func (s *EvidenceStore) attachRoles(ctx context.Context, relations []domain.Relation) error {
	if len(relations) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(relations))
	index := make(map[uuid.UUID]int, len(relations))
	for i, rel := range relations {
		ids[i] = rel.ID
		index[rel.ID] = i
	}

	rows, err := s.db.Query(ctx,
		`SELECT relation_id, entity_id, role_type
		 FROM roles
		 WHERE relation_id = ANY($1)
		 ORDER BY relation_id, role_type`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("get roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.RelationID, &role.EntityID, &role.RoleType); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		if i, ok := index[role.RelationID]; ok {
			relations[i].Roles = append(relations[i].Roles, role)
		}
	}
	return rows.Err()
}
