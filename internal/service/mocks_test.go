package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veracify/credence/internal/domain"
	"github.com/veracify/credence/internal/store"
	"go.uber.org/zap"
)

// mockEvidenceStore implements domain.EvidenceStore over in-memory maps.
type mockEvidenceStore struct {
	entities  map[uuid.UUID]*domain.Entity
	relations map[uuid.UUID][]domain.Relation
	fetchErr  error
}

func newMockEvidenceStore() *mockEvidenceStore {
	return &mockEvidenceStore{
		entities:  make(map[uuid.UUID]*domain.Entity),
		relations: make(map[uuid.UUID][]domain.Relation),
	}
}

func (m *mockEvidenceStore) GetEntity(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	entity, ok := m.entities[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return entity, nil
}

func (m *mockEvidenceStore) GetIncidentRelations(ctx context.Context, entityID uuid.UUID) ([]domain.Relation, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.relations[entityID], nil
}

func (m *mockEvidenceStore) addEntity(name string) uuid.UUID {
	id := uuid.New()
	m.entities[id] = &domain.Entity{ID: id, Name: name, CreatedAt: time.Now()}
	return id
}

func testLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func trustLevel(v float64) *float64 {
	return &v
}

var relationClock = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// makeRelation builds a well-formed relation placing the entity in one role,
// backed by a fresh source. Creation times are strictly increasing so tests
// exercise the creation-order tie-break deterministically.
func makeRelation(entityID uuid.UUID, roleType string, dir domain.RelationDirection, confidence float64, trust *float64) domain.Relation {
	relID := uuid.New()
	srcID := uuid.New()
	relationClock = relationClock.Add(time.Minute)
	return domain.Relation{
		ID:         relID,
		SourceID:   srcID,
		Kind:       "association",
		Direction:  dir,
		Confidence: confidence,
		Roles: []domain.Role{
			{RelationID: relID, EntityID: entityID, RoleType: roleType},
		},
		Source: &domain.Source{
			ID:         srcID,
			Title:      "Test Source",
			TrustLevel: trust,
			CreatedAt:  relationClock,
		},
		CreatedAt: relationClock,
	}
}

func testService(mock *mockEvidenceStore) *InferenceService {
	return NewInferenceService(mock, testLogger())
}
