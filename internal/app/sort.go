package app

import (
	"sort"
	"strings"

	"github.com/dogmawang-bsc/fake-html2/internal/domain"
)

const (
	SortNewest     = "time/newest"
	SortRatingDesc = "rating/desc"
	SortRatingAsc  = "rating/asc"
)

// sortReviews returns a reordered copy of rs; the stored order is never
// touched. An empty or unrecognized key returns the input order.
func sortReviews(rs []domain.Review, key string) []domain.Review {
	out := make([]domain.Review, len(rs))
	copy(out, rs)
	switch key {
	case SortNewest:
		sort.Slice(out, func(i, j int) bool {
			return recencyScore(out[i].Time) > recencyScore(out[j].Time)
		})
	case SortRatingDesc:
		sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortRatingAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	}
	return out
}

// recencyScore ranks a free-form display time like "4 weeks ago". The score
// is the numeric prefix plus a bucket offset: weeks +100, months +50,
// years +0. Strings with no recognized unit score 0. The heuristic only has
// to order relative-time strings the widget itself produces.
func recencyScore(t string) int {
	s := strings.ToLower(t)
	n := numericPrefix(s)
	switch {
	case strings.Contains(s, "week"):
		return n + 100
	case strings.Contains(s, "month"):
		return n + 50
	case strings.Contains(s, "year"):
		return n
	}
	return 0
}

// numericPrefix parses the leading digits of s, 0 when there are none.
func numericPrefix(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
