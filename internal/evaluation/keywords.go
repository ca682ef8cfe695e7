package evaluation

import "strings"

// Match holds the outcome of scanning a text for a keyword list.
type Match struct {
	Matched []string
	Missing []string
	Total   int
}

// Count returns the number of matched keywords.
func (m Match) Count() int {
	return len(m.Matched)
}

// Coverage returns the matched fraction, or 0 when there were no keywords to match.
func (m Match) Coverage() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(len(m.Matched)) / float64(m.Total)
}

// MatchKeywords reports which keywords occur in text as case-insensitive substrings.
//
// Matching is plain containment: a keyword embedded in a longer unrelated word still
// counts, and overlapping keywords are each tested on their own. Both lists keep the
// order of keywords.
func MatchKeywords(text string, keywords []string) Match {
	lowered := strings.ToLower(text)
	match := Match{
		Matched: make([]string, 0, len(keywords)),
		Missing: make([]string, 0, len(keywords)),
		Total:   len(keywords),
	}

	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			match.Matched = append(match.Matched, keyword)
			continue
		}
		match.Missing = append(match.Missing, keyword)
	}

	return match
}
