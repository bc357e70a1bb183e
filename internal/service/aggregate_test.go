package service

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/veracify/credence/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateRole_SingleSupportingRelation(t *testing.T) {
	svc := testService(newMockEvidenceStore())
	entityID := uuid.New()

	relations := []domain.Relation{
		makeRelation(entityID, "agent", domain.DirectionSupports, 0.8, trustLevel(1.0)),
	}

	agg := svc.aggregateRole(relations)

	if !almostEqual(agg.Coverage, 0.8) {
		t.Fatalf("expected coverage 0.8, got %f", agg.Coverage)
	}
	if agg.Score == nil || !almostEqual(*agg.Score, 1.0) {
		t.Fatalf("expected score 1.0, got %v", agg.Score)
	}
	if agg.Disagreement != 0 {
		t.Fatalf("expected disagreement 0, got %f", agg.Disagreement)
	}
	if agg.Confidence <= 0 || agg.Confidence >= 1 {
		t.Fatalf("expected confidence in (0,1), got %f", agg.Confidence)
	}
}

func TestAggregateRole_MixedDirections(t *testing.T) {
	svc := testService(newMockEvidenceStore())
	entityID := uuid.New()

	// Supports with w = 1.0 * 0.6 = 0.6, contradicts with w = 0.5 * 0.8 = 0.4.
	relations := []domain.Relation{
		makeRelation(entityID, "agent", domain.DirectionSupports, 0.6, trustLevel(1.0)),
		makeRelation(entityID, "agent", domain.DirectionContradicts, 0.8, trustLevel(0.5)),
	}

	agg := svc.aggregateRole(relations)

	if !almostEqual(agg.Coverage, 1.0) {
		t.Fatalf("expected coverage 1.0, got %f", agg.Coverage)
	}
	if agg.Score == nil || !almostEqual(*agg.Score, 0.2) {
		t.Fatalf("expected score 0.2, got %v", agg.Score)
	}
	if !almostEqual(agg.Disagreement, 0.4) {
		t.Fatalf("expected disagreement 0.4, got %f", agg.Disagreement)
	}
}

func TestAggregateRole_EmptySet(t *testing.T) {
	svc := testService(newMockEvidenceStore())

	agg := svc.aggregateRole(nil)

	if agg.Coverage != 0 {
		t.Fatalf("expected coverage 0, got %f", agg.Coverage)
	}
	if agg.Score != nil {
		t.Fatalf("expected nil score, got %f", *agg.Score)
	}
	if agg.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %f", agg.Confidence)
	}
	if agg.Disagreement != 0 {
		t.Fatalf("expected disagreement 0, got %f", agg.Disagreement)
	}
}

func TestAggregateRole_DefaultTrust(t *testing.T) {
	svc := testService(newMockEvidenceStore())
	entityID := uuid.New()

	// No trust level recorded: weight should be 0.5 * 0.8 = 0.4.
	relations := []domain.Relation{
		makeRelation(entityID, "agent", domain.DirectionSupports, 0.8, nil),
	}

	agg := svc.aggregateRole(relations)

	if !almostEqual(agg.Coverage, 0.4) {
		t.Fatalf("expected coverage 0.4 with default trust, got %f", agg.Coverage)
	}
}

func TestAggregateRole_Bounds(t *testing.T) {
	svc := testService(newMockEvidenceStore())
	entityID := uuid.New()

	sets := [][]domain.Relation{
		nil,
		{
			makeRelation(entityID, "agent", domain.DirectionSupports, 1.0, trustLevel(1.0)),
		},
		{
			makeRelation(entityID, "agent", domain.DirectionContradicts, 1.0, trustLevel(1.0)),
			makeRelation(entityID, "agent", domain.DirectionContradicts, 0.9, trustLevel(0.3)),
		},
		{
			makeRelation(entityID, "agent", domain.DirectionSupports, 0.2, nil),
			makeRelation(entityID, "agent", domain.DirectionContradicts, 0.7, trustLevel(0.9)),
			makeRelation(entityID, "agent", domain.DirectionSupports, 0.5, trustLevel(0.1)),
		},
	}

	for i, relations := range sets {
		agg := svc.aggregateRole(relations)
		if agg.Coverage < 0 {
			t.Fatalf("set %d: negative coverage %f", i, agg.Coverage)
		}
		if agg.Score != nil && (*agg.Score < -1 || *agg.Score > 1) {
			t.Fatalf("set %d: score out of [-1,1]: %f", i, *agg.Score)
		}
		if agg.Confidence < 0 || agg.Confidence >= 1 {
			t.Fatalf("set %d: confidence out of [0,1): %f", i, agg.Confidence)
		}
		if agg.Disagreement < 0 || agg.Disagreement > 1 {
			t.Fatalf("set %d: disagreement out of [0,1]: %f", i, agg.Disagreement)
		}
	}
}

func TestAggregateRole_Monotonicity(t *testing.T) {
	svc := testService(newMockEvidenceStore())
	entityID := uuid.New()

	base := []domain.Relation{
		makeRelation(entityID, "agent", domain.DirectionSupports, 0.6, trustLevel(0.8)),
		makeRelation(entityID, "agent", domain.DirectionContradicts, 0.4, trustLevel(0.7)),
	}
	baseAgg := svc.aggregateRole(base)

	withSupport := append(append([]domain.Relation{}, base...),
		makeRelation(entityID, "agent", domain.DirectionSupports, 0.5, trustLevel(0.5)))
	if agg := svc.aggregateRole(withSupport); *agg.Score < *baseAgg.Score {
		t.Fatalf("adding supporting evidence decreased score: %f -> %f", *baseAgg.Score, *agg.Score)
	}

	withContradiction := append(append([]domain.Relation{}, base...),
		makeRelation(entityID, "agent", domain.DirectionContradicts, 0.5, trustLevel(0.5)))
	if agg := svc.aggregateRole(withContradiction); *agg.Score > *baseAgg.Score {
		t.Fatalf("adding contradicting evidence increased score: %f -> %f", *baseAgg.Score, *agg.Score)
	}
}

func TestAggregateRole_SaturationOverride(t *testing.T) {
	entityID := uuid.New()
	relations := []domain.Relation{
		makeRelation(entityID, "agent", domain.DirectionSupports, 0.8, trustLevel(1.0)),
	}

	fast := testService(newMockEvidenceStore())
	fast.CoverageSaturation = 0.5

	slow := testService(newMockEvidenceStore())
	slow.CoverageSaturation = 10.0

	if fast.aggregateRole(relations).Confidence <= slow.aggregateRole(relations).Confidence {
		t.Fatal("smaller saturation constant should yield higher confidence for equal coverage")
	}
}

func TestRelationsForRole(t *testing.T) {
	entityID := uuid.New()
	otherID := uuid.New()

	rel := makeRelation(entityID, "agent", domain.DirectionSupports, 0.9, trustLevel(1.0))
	rel.Roles = append(rel.Roles, domain.Role{RelationID: rel.ID, EntityID: otherID, RoleType: "target"})

	relations := []domain.Relation{
		rel,
		makeRelation(entityID, "target", domain.DirectionSupports, 0.5, nil),
		makeRelation(otherID, "agent", domain.DirectionSupports, 0.5, nil),
	}

	agents := relationsForRole(relations, entityID, "agent")
	if len(agents) != 1 || agents[0].ID != rel.ID {
		t.Fatalf("expected exactly the first relation for (entity, agent), got %d", len(agents))
	}

	// The other entity's "target" role on the shared relation must not leak in.
	targets := relationsForRole(relations, entityID, "target")
	if len(targets) != 1 {
		t.Fatalf("expected 1 relation for (entity, target), got %d", len(targets))
	}
}
