package history

import "strings"

// FuzzyScore implements the scoring algorithm from spec §4.2: iterate the
// pattern left-to-right over the candidate, counting consecutive-match
// bonuses, a start-of-string bonus, and a post-separator bonus; return 0 if
// any pattern byte cannot be matched in order (case-insensitive). This is
// also the ranking function behind tab-completion cycling (spec §4.2 "tab
// completion"), shared so the two features can't drift apart.
func FuzzyScore(pattern, candidate string) int {
	if pattern == "" {
		return 1
	}
	p := strings.ToLower(pattern)
	c := strings.ToLower(candidate)

	score := 0
	ci := 0
	consecutive := 0
	lastMatch := -2
	for pi := 0; pi < len(p); pi++ {
		pb := p[pi]
		found := false
		for ; ci < len(c); ci++ {
			if c[ci] != pb {
				continue
			}
			found = true
			switch {
			case ci == 0:
				score += 10
			case isSeparator(c[ci-1]):
				score += 8
			}
			if lastMatch == ci-1 {
				consecutive++
			} else {
				consecutive = 0
			}
			score += 1 + 5*consecutive
			lastMatch = ci
			ci++
			break
		}
		if !found {
			return 0
		}
	}
	return score
}

func isSeparator(b byte) bool {
	return b == '/' || b == '_' || b == '-'
}

// ReverseSearchMatch finds the best match for query scanning history from
// startIdx downward (spec §4.2's reverse-i-search): in substring mode, the
// first entry containing query as a substring; in fuzzy mode, the
// highest-scoring entry. It returns the index and whether a match was
// found.
func (h *History) ReverseSearchMatch(query string, startIdx int, fuzzy bool) (int, bool) {
	if query == "" || startIdx < 0 {
		return 0, false
	}
	if startIdx >= len(h.entries) {
		startIdx = len(h.entries) - 1
	}
	if !fuzzy {
		for i := startIdx; i >= 0; i-- {
			if strings.Contains(h.entries[i], query) {
				return i, true
			}
		}
		return 0, false
	}
	best := -1
	bestScore := 0
	for i := startIdx; i >= 0; i-- {
		s := FuzzyScore(query, h.entries[i])
		if s > bestScore {
			bestScore = s
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
