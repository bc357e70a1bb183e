package service

import (
	"sort"

	"github.com/veracify/credence/internal/domain"
)

// buildSourceChain emits one contribution record per qualifying relation,
// sorted by contribution percentage descending. The input arrives in relation
// creation order and the sort is stable, so ties keep the earliest relation
// first and repeated calls on unchanged data produce identical output.
// Zero coverage yields 0% contributions, never NaN.
func buildSourceChain(relations []domain.Relation, coverage float64) []domain.SourceContribution {
	chain := make([]domain.SourceContribution, 0, len(relations))
	for i := range relations {
		rel := &relations[i]
		w := rel.Weight()

		var pct float64
		if coverage > 0 {
			pct = 100 * w / coverage
		}

		contribution := domain.SourceContribution{
			RelationID:             rel.ID,
			RelationKind:           rel.Kind,
			RelationDirection:      rel.Direction,
			RelationConfidence:     rel.Confidence,
			RelationScope:          rel.Scope,
			RoleWeight:             w,
			ContributionPercentage: pct,
		}
		if rel.Source != nil {
			contribution.SourceID = rel.Source.ID
			contribution.SourceTitle = rel.Source.Title
			contribution.SourceAuthors = rel.Source.Authors
			contribution.SourceYear = rel.Source.Year
			contribution.SourceKind = rel.Source.Kind
			contribution.SourceTrust = rel.Source.Trust()
			contribution.SourceURL = rel.Source.URL
		}
		chain = append(chain, contribution)
	}

	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].ContributionPercentage > chain[j].ContributionPercentage
	})
	return chain
}
