package evaluation

const (
	progressPerKeyword = 25
	turnBaseScore      = 60
	turnPointsPerMatch = 10
	turnMaxScore       = 95
)

// Turn is the outcome of scoring one learner message in a dialogue practice.
type Turn struct {
	Matched  []string
	Progress int
	Score    int
	Complete bool
}

// ScoreTurn advances dialogue objective progress by the keywords the message hits.
// Each hit moves progress 25 points up to 100; the turn score is 60 plus 10 per hit,
// capped at 95. The objective completes on the turn that brings progress to 100.
func ScoreTurn(text string, keywords []string, previousProgress int) Turn {
	match := MatchKeywords(text, keywords)
	hits := match.Count()

	progress := previousProgress + hits*progressPerKeyword
	if progress > 100 {
		progress = 100
	}
	if progress < 0 {
		progress = 0
	}

	score := turnBaseScore + hits*turnPointsPerMatch
	if score > turnMaxScore {
		score = turnMaxScore
	}

	return Turn{
		Matched:  match.Matched,
		Progress: progress,
		Score:    score,
		Complete: progress >= 100,
	}
}
