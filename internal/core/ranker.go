// ABOUTME: Pure affinity ranker for catalog recommendations
// ABOUTME: Scores candidates by summed key affinity, no I/O, no hidden state
package core

import "sort"

const (
	// RecommendedItemCount caps item recommendation lists
	RecommendedItemCount = 6
	// RecommendedUserCount caps the recommended-accounts list
	RecommendedUserCount = 3
)

// RankByAffinity ranks candidate item ids by the user's accumulated
// affinity. For each candidate not in excluded, the score is the sum of
// scores[key] over the candidate's affinity keys. Candidates scoring
// zero or less are dropped, the rest are ordered by score descending
// (stable, so equal scores keep candidate order) and truncated to limit.
func RankByAffinity(candidateIDs []int, keysFor func(id int) []string, scores map[string]int, excluded map[int]bool, limit int) []int {
	type scored struct {
		id    int
		score int
	}

	var ranked []scored
	for _, id := range candidateIDs {
		if excluded[id] {
			continue
		}
		total := 0
		for _, key := range keysFor(id) {
			total += scores[key]
		}
		if total <= 0 {
			continue
		}
		ranked = append(ranked, scored{id: id, score: total})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]int, len(ranked))
	for i, r := range ranked {
		ids[i] = r.id
	}
	return ids
}
