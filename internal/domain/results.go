package domain

import "github.com/google/uuid"

// Consensus classifies how settled the evidence for a role is.
type Consensus string

const (
	ConsensusDisputed Consensus = "disputed"
	ConsensusWeak     Consensus = "weak"
	ConsensusModerate Consensus = "moderate"
	ConsensusStrong   Consensus = "strong"
)

// RoleAggregate holds the four aggregate numbers for one (entity, role_type)
// pair. Score is nil when no evidence qualifies; it is never NaN.
type RoleAggregate struct {
	Coverage     float64  `json:"coverage"`
	Score        *float64 `json:"score"`
	Confidence   float64  `json:"confidence"`
	Disagreement float64  `json:"disagreement"`
}

// RoleInference is a RoleAggregate labeled with its role type, one row of the
// entity-level overview.
type RoleInference struct {
	RoleType     string   `json:"role_type"`
	Score        *float64 `json:"score"`
	Coverage     float64  `json:"coverage"`
	Confidence   float64  `json:"confidence"`
	Disagreement float64  `json:"disagreement"`
}

// Diagnostic reports a relation that was excluded from aggregation because it
// was malformed (unresolved source, no roles, out-of-range confidence, ...).
type Diagnostic struct {
	RelationID uuid.UUID `json:"relation_id"`
	Reason     string    `json:"reason"`
}

// InferenceResult is the entity-level overview: incident relations grouped by
// kind for display, and one inference per role type the entity occupies. Both
// views are derived from the same scope-filtered snapshot.
type InferenceResult struct {
	EntityID        uuid.UUID             `json:"entity_id"`
	RelationsByKind map[string][]Relation `json:"relations_by_kind"`
	RoleInferences  []RoleInference       `json:"role_inferences"`
	Diagnostics     []Diagnostic          `json:"diagnostics,omitempty"`
}

// SourceContribution is one link of the source chain: a relation's share of
// the total evidence weight plus denormalized display metadata.
type SourceContribution struct {
	SourceID               uuid.UUID         `json:"source_id"`
	SourceTitle            string            `json:"source_title"`
	SourceAuthors          string            `json:"source_authors,omitempty"`
	SourceYear             int               `json:"source_year,omitempty"`
	SourceKind             string            `json:"source_kind,omitempty"`
	SourceTrust            float64           `json:"source_trust"`
	SourceURL              string            `json:"source_url,omitempty"`
	RelationID             uuid.UUID         `json:"relation_id"`
	RelationKind           string            `json:"relation_kind"`
	RelationDirection      RelationDirection `json:"relation_direction"`
	RelationConfidence     float64           `json:"relation_confidence"`
	RelationScope          map[string]string `json:"relation_scope,omitempty"`
	RoleWeight             float64           `json:"role_weight"`
	ContributionPercentage float64           `json:"contribution_percentage"`
}

// ConfidenceFactor pairs one aggregate number with a fixed rationale string.
type ConfidenceFactor struct {
	Factor      string  `json:"factor"`
	Value       float64 `json:"value"`
	Explanation string  `json:"explanation"`
}

// ContradictionReport partitions the qualifying evidence by direction.
type ContradictionReport struct {
	SupportingCount    int     `json:"supporting_count"`
	ContradictingCount int     `json:"contradicting_count"`
	DisagreementScore  float64 `json:"disagreement_score"`
}

// ExplanationResult is the full drill-down for one (entity, role_type) pair:
// the aggregate numbers, their classification, per-source attribution and a
// deterministic natural-language summary.
type ExplanationResult struct {
	EntityID          uuid.UUID            `json:"entity_id"`
	RoleType          string               `json:"role_type"`
	Score             *float64             `json:"score"`
	Confidence        float64              `json:"confidence"`
	Coverage          float64              `json:"coverage"`
	Disagreement      float64              `json:"disagreement"`
	Consensus         Consensus            `json:"consensus_classification"`
	Summary           string               `json:"summary"`
	ConfidenceFactors []ConfidenceFactor   `json:"confidence_factors"`
	Contradictions    ContradictionReport  `json:"contradictions"`
	SourceChain       []SourceContribution `json:"source_chain"`
	ScopeFilter       map[string]string    `json:"scope_filter"`
	Diagnostics       []Diagnostic         `json:"diagnostics,omitempty"`
}
