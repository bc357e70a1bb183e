package service

import (
	"math"

	"github.com/google/uuid"
	"github.com/veracify/credence/internal/domain"
)

// DefaultCoverageSaturation is the calibration constant k in
// confidence = 1 - exp(-coverage/k). Smaller k saturates faster.
const DefaultCoverageSaturation = 2.0

// aggregateRole computes coverage, score, confidence and disagreement over a
// qualifying relation set. Pure: no I/O, no mutation of the input. An empty
// set yields the defined zero result (nil score), never an error.
func (s *InferenceService) aggregateRole(relations []domain.Relation) domain.RoleAggregate {
	var coverage, signed, contradicting float64
	for i := range relations {
		w := relations[i].Weight()
		coverage += w
		if relations[i].Direction == domain.DirectionContradicts {
			signed -= w
			contradicting += w
		} else {
			signed += w
		}
	}

	agg := domain.RoleAggregate{Coverage: coverage}
	if coverage > 0 {
		score := signed / coverage
		agg.Score = &score
		agg.Disagreement = contradicting / coverage
		agg.Confidence = 1 - math.Exp(-coverage/s.CoverageSaturation)
	}
	return agg
}

// relationsForRole narrows a relation set to those that place the entity in
// the given role. This is the authoritative aggregation axis; relation kind
// is display grouping only.
func relationsForRole(relations []domain.Relation, entityID uuid.UUID, roleType string) []domain.Relation {
	qualifying := make([]domain.Relation, 0, len(relations))
	for i := range relations {
		if relations[i].HasRole(entityID, roleType) {
			qualifying = append(qualifying, relations[i])
		}
	}
	return qualifying
}
