package service

import (
	"sort"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/model"
)

// Project derives the displayable sequence from a post collection: filter by
// verdict first, then stable-sort by the given key. Ties keep their relative
// input order so re-renders never shuffle equal-score posts. The input slice
// and its posts are never mutated.
func Project(posts []model.Post, filterVerdict string, key model.SortKey) []model.Post {
	result := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if filterVerdict == model.FilterAll || filterVerdict == "" || string(p.Verdict) == filterVerdict {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch key {
		case model.SortLatest:
			return a.Timestamp.After(b.Timestamp)
		case model.SortTrustHigh:
			return a.TrustScore > b.TrustScore
		case model.SortTrustLow:
			return a.TrustScore < b.TrustScore
		case model.SortCrowdHigh:
			return a.CrowdScore > b.CrowdScore
		default:
			return false
		}
	})

	return result
}
