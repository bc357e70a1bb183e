package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/veracify/credence/internal/domain"
	"go.uber.org/zap"
)

// InferenceService turns a snapshot of possibly-contradictory relations into
// belief scores, confidence levels and attributed explanations. It is
// stateless and read-only: every call is an independent pure computation over
// the snapshot fetched from the evidence store, so concurrent calls never
// interfere and nothing is cached here.
type InferenceService struct {
	store  domain.EvidenceStore
	logger *zap.Logger

	CoverageSaturation        float64
	DisputedDisagreement      float64
	WeakConfidenceCeiling     float64
	ModerateConfidenceCeiling float64
}

func NewInferenceService(store domain.EvidenceStore, logger *zap.Logger) *InferenceService {
	return &InferenceService{
		store:                     store,
		logger:                    logger,
		CoverageSaturation:        DefaultCoverageSaturation,
		DisputedDisagreement:      DefaultDisputedDisagreement,
		WeakConfidenceCeiling:     DefaultWeakConfidenceCeiling,
		ModerateConfidenceCeiling: DefaultModerateConfidenceCeiling,
	}
}

// InferEntity builds the entity-level overview: incident relations grouped by
// kind for display, and one inference per role type the entity occupies. Both
// views come from the identical post-scope-filter snapshot, so the raw
// grouping never diverges from the evidence the aggregates actually used.
func (s *InferenceService) InferEntity(ctx context.Context, entityID uuid.UUID, scope map[string]string) (*domain.InferenceResult, error) {
	if _, err := s.store.GetEntity(ctx, entityID); err != nil {
		return nil, err
	}

	relations, err := s.store.GetIncidentRelations(ctx, entityID)
	if err != nil {
		return nil, err
	}

	sound, diagnostics := s.screenRelations(relations)
	filtered := FilterByScope(sound, scope)

	result := &domain.InferenceResult{
		EntityID:        entityID,
		RelationsByKind: groupByKind(filtered),
		RoleInferences:  make([]domain.RoleInference, 0),
		Diagnostics:     diagnostics,
	}

	for _, roleType := range roleTypesFor(filtered, entityID) {
		qualifying := relationsForRole(filtered, entityID, roleType)
		agg := s.aggregateRole(qualifying)
		result.RoleInferences = append(result.RoleInferences, domain.RoleInference{
			RoleType:     roleType,
			Score:        agg.Score,
			Coverage:     agg.Coverage,
			Confidence:   agg.Confidence,
			Disagreement: agg.Disagreement,
		})
	}

	return result, nil
}

// screenRelations excludes malformed relations from aggregation and reports
// each exclusion as a diagnostic instead of failing the whole request.
func (s *InferenceService) screenRelations(relations []domain.Relation) ([]domain.Relation, []domain.Diagnostic) {
	sound := make([]domain.Relation, 0, len(relations))
	var diagnostics []domain.Diagnostic

	for i := range relations {
		rel := &relations[i]
		reason := ""
		switch {
		case rel.Source == nil:
			reason = "source could not be resolved"
		case len(rel.Roles) == 0:
			reason = "relation has no roles"
		case !domain.ValidDirection(string(rel.Direction)):
			reason = "unrecognized direction label"
		case rel.Confidence < 0 || rel.Confidence > 1:
			reason = "confidence outside [0,1]"
		case rel.Source.TrustLevel != nil && (*rel.Source.TrustLevel < 0 || *rel.Source.TrustLevel > 1):
			reason = "source trust level outside [0,1]"
		}

		if reason == "" {
			sound = append(sound, relations[i])
			continue
		}

		s.logger.Debug("excluding malformed relation",
			zap.String("relation_id", rel.ID.String()),
			zap.String("reason", reason))
		diagnostics = append(diagnostics, domain.Diagnostic{RelationID: rel.ID, Reason: reason})
	}

	return sound, diagnostics
}

// groupByKind buckets relations by their kind label for raw display.
func groupByKind(relations []domain.Relation) map[string][]domain.Relation {
	byKind := make(map[string][]domain.Relation)
	for i := range relations {
		byKind[relations[i].Kind] = append(byKind[relations[i].Kind], relations[i])
	}
	return byKind
}

// roleTypesFor lists the distinct role types the entity occupies, in first
// appearance order. Input arrives in creation order, so the listing is stable
// across repeated calls on unchanged data.
func roleTypesFor(relations []domain.Relation, entityID uuid.UUID) []string {
	seen := make(map[string]bool)
	var roleTypes []string
	for i := range relations {
		for _, role := range relations[i].Roles {
			if role.EntityID != entityID || seen[role.RoleType] {
				continue
			}
			seen[role.RoleType] = true
			roleTypes = append(roleTypes, role.RoleType)
		}
	}
	return roleTypes
}
