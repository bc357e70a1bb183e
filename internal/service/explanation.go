package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/veracify/credence/internal/domain"
)

// ExplainRole is the full drill-down for one (entity, role_type) pair: scope
// filtering, aggregation, per-source attribution, contradiction partitioning
// and a natural-language summary. The summary is deterministic template
// interpolation over numeric thresholds; identical inputs always produce
// identical text. Zero qualifying relations yield a well-formed result that
// says so, not an error.
func (s *InferenceService) ExplainRole(ctx context.Context, entityID uuid.UUID, roleType string, scope map[string]string) (*domain.ExplanationResult, error) {
	if _, err := s.store.GetEntity(ctx, entityID); err != nil {
		return nil, err
	}

	relations, err := s.store.GetIncidentRelations(ctx, entityID)
	if err != nil {
		return nil, err
	}

	sound, diagnostics := s.screenRelations(relations)
	filtered := FilterByScope(sound, scope)
	qualifying := relationsForRole(filtered, entityID, roleType)

	agg := s.aggregateRole(qualifying)
	supporting, contradicting := partitionByDirection(qualifying)
	consensus := s.classifyConsensus(agg.Confidence, agg.Disagreement)

	return &domain.ExplanationResult{
		EntityID:          entityID,
		RoleType:          roleType,
		Score:             agg.Score,
		Confidence:        agg.Confidence,
		Coverage:          agg.Coverage,
		Disagreement:      agg.Disagreement,
		Consensus:         consensus,
		Summary:           s.composeSummary(roleType, scope, qualifying, agg, len(contradicting)),
		ConfidenceFactors: confidenceFactors(agg),
		Contradictions: domain.ContradictionReport{
			SupportingCount:    len(supporting),
			ContradictingCount: len(contradicting),
			DisagreementScore:  agg.Disagreement,
		},
		SourceChain: buildSourceChain(qualifying, agg.Coverage),
		ScopeFilter: scope,
		Diagnostics: diagnostics,
	}, nil
}

// Fixed rationale strings for the confidence factor breakdown.
const (
	coverageRationale     = "Total trust-weighted evidence weight; independent corroboration raises coverage without bound."
	confidenceRationale   = "Saturating function of coverage; approaches 1 as evidence accumulates, regardless of direction."
	disagreementRationale = "Share of total evidence weight carried by contradicting assertions."
)

func confidenceFactors(agg domain.RoleAggregate) []domain.ConfidenceFactor {
	return []domain.ConfidenceFactor{
		{Factor: "coverage", Value: agg.Coverage, Explanation: coverageRationale},
		{Factor: "confidence", Value: agg.Confidence, Explanation: confidenceRationale},
		{Factor: "disagreement", Value: agg.Disagreement, Explanation: disagreementRationale},
	}
}

// composeSummary assembles the summary from fixed sentence templates selected
// by evidence count, score band, confidence band and contradiction presence.
func (s *InferenceService) composeSummary(roleType string, scope map[string]string, qualifying []domain.Relation, agg domain.RoleAggregate, contradictingCount int) string {
	scopeClause := ""
	if len(scope) > 0 {
		scopeClause = " under the requested scope"
	}

	if len(qualifying) == 0 {
		return fmt.Sprintf("No evidence exists for role %q%s.", roleType, scopeClause)
	}

	sources := distinctSourceCount(qualifying)
	summary := fmt.Sprintf("%d %s from %d %s %s on role %q%s.",
		len(qualifying), pluralize(len(qualifying), "assertion", "assertions"),
		sources, pluralize(sources, "source", "sources"),
		pluralize(len(qualifying), "bears", "bear"),
		roleType, scopeClause)

	// Score is nil when the qualifying set carries zero total weight, e.g.
	// every assertion has confidence 0. Still a defined result, not an error.
	if agg.Score == nil {
		summary += " The qualifying assertions carry no measurable evidence weight."
	} else {
		summary += " " + scoreSentence(*agg.Score)
	}
	summary += " " + fmt.Sprintf("Overall confidence is %s (%.2f).",
		confidenceBand(agg.Confidence, s.WeakConfidenceCeiling, s.ModerateConfidenceCeiling), agg.Confidence)

	if contradictingCount > 0 {
		summary += " " + fmt.Sprintf("%d contradicting %s %s for %.0f%% of the evidence weight.",
			contradictingCount, pluralize(contradictingCount, "assertion", "assertions"),
			pluralize(contradictingCount, "accounts", "account"),
			100*agg.Disagreement)
	} else {
		summary += " No contradicting evidence was found."
	}

	return summary
}

func scoreSentence(score float64) string {
	switch {
	case score >= 0.75:
		return "The evidence strongly supports this role."
	case score > 0.25:
		return "The evidence leans toward supporting this role."
	case score >= -0.25:
		return "The evidence is close to evenly split."
	case score > -0.75:
		return "The evidence leans toward contradicting this role."
	default:
		return "The evidence strongly contradicts this role."
	}
}

func confidenceBand(confidence, weakCeiling, moderateCeiling float64) string {
	switch {
	case confidence <= weakCeiling:
		return "weak"
	case confidence <= moderateCeiling:
		return "moderate"
	default:
		return "strong"
	}
}

func distinctSourceCount(relations []domain.Relation) int {
	seen := make(map[uuid.UUID]bool)
	for i := range relations {
		if relations[i].Source != nil {
			seen[relations[i].Source.ID] = true
		}
	}
	return len(seen)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
