package service

import "github.com/veracify/credence/internal/domain"

// Consensus thresholds. These are policy, not mechanism: they live on the
// service struct and can be overridden without touching the aggregation math.
const (
	DefaultDisputedDisagreement      = 0.5
	DefaultWeakConfidenceCeiling     = 0.4
	DefaultModerateConfidenceCeiling = 0.7
)

// partitionByDirection splits a qualifying set into supporting and
// contradicting subsets, preserving order within each.
func partitionByDirection(relations []domain.Relation) (supporting, contradicting []domain.Relation) {
	for i := range relations {
		if relations[i].Direction == domain.DirectionContradicts {
			contradicting = append(contradicting, relations[i])
		} else {
			supporting = append(supporting, relations[i])
		}
	}
	return supporting, contradicting
}

// classifyConsensus labels how settled the evidence is. Heavy disagreement
// dominates regardless of confidence; otherwise the label tracks the
// confidence band.
func (s *InferenceService) classifyConsensus(confidence, disagreement float64) domain.Consensus {
	switch {
	case disagreement > s.DisputedDisagreement:
		return domain.ConsensusDisputed
	case confidence <= s.WeakConfidenceCeiling:
		return domain.ConsensusWeak
	case confidence <= s.ModerateConfidenceCeiling:
		return domain.ConsensusModerate
	default:
		return domain.ConsensusStrong
	}
}
