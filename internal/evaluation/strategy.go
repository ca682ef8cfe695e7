package evaluation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// StrategyName identifies a scoring formula.
type StrategyName string

const (
	// StrategyCoverageLength blends keyword coverage (70%) with a length bonus (30%).
	StrategyCoverageLength StrategyName = "coverage-length"
	// StrategyBucketed sums discrete point buckets for coverage, length, vocabulary and structure.
	StrategyBucketed StrategyName = "bucketed"
)

// DefaultStrategy is used when no strategy is named.
const DefaultStrategy = StrategyCoverageLength

// ErrUnknownStrategy is returned when a strategy name cannot be resolved.
var ErrUnknownStrategy = errors.New("unknown scoring strategy")

// DefaultProfessionalTerms is the vocabulary the bucketed strategy rewards.
var DefaultProfessionalTerms = []string{"解决方案", "企业级", "性能", "安全", "技术", "服务"}

const sentenceTerminators = "。！？.!?"

// Strategy turns a keyword match and the raw text into a 0-100 criterion score.
type Strategy interface {
	Name() StrategyName
	Score(text string, match Match) int
}

// CoverageLength implements the coverage-length formula:
// round(0.7*coverage*100 + 0.3*min(len/200, 1)*100).
type CoverageLength struct{}

// Name implements Strategy.
func (CoverageLength) Name() StrategyName {
	return StrategyCoverageLength
}

// Score implements Strategy.
func (CoverageLength) Score(text string, match Match) int {
	keywordScore := match.Coverage() * 100
	lengthScore := math.Min(float64(TextLength(text))/200*100, 100)
	return clampScore(roundHalfUp(keywordScore*0.7 + lengthScore*0.3))
}

// Bucketed implements the point-bucket formula. A nil ProfessionalTerms uses
// DefaultProfessionalTerms.
type Bucketed struct {
	ProfessionalTerms []string
}

// Name implements Strategy.
func (Bucketed) Name() StrategyName {
	return StrategyBucketed
}

// Score implements Strategy.
func (b Bucketed) Score(text string, match Match) int {
	points := match.Coverage() * 40

	length := TextLength(text)
	switch {
	case length >= 100:
		points += 30
	case length >= 50:
		points += 20
	default:
		points += 10
	}

	terms := b.ProfessionalTerms
	if terms == nil {
		terms = DefaultProfessionalTerms
	}
	if MatchKeywords(text, terms).Count() >= 3 {
		points += 20
	} else {
		points += 10
	}

	if countTerminators(text) >= 3 {
		points += 10
	}

	return clampScore(roundHalfUp(math.Min(points, 100)))
}

// StrategyByName resolves a strategy. An empty name yields DefaultStrategy.
func StrategyByName(name string) (Strategy, error) {
	switch StrategyName(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyCoverageLength:
		return CoverageLength{}, nil
	case StrategyBucketed:
		return Bucketed{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// StrategyNames lists every supported strategy.
func StrategyNames() []StrategyName {
	return []StrategyName{StrategyCoverageLength, StrategyBucketed}
}

func countTerminators(text string) int {
	count := 0
	for _, r := range text {
		if strings.ContainsRune(sentenceTerminators, r) {
			count++
		}
	}
	return count
}

func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

func clampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
