package evaluation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func productCriteria() []Criterion {
	return []Criterion{
		{ID: "positioning", Name: "Positioning", Keywords: []string{"企业级", "中大型企业", "云端", "专业", "商用"}, Weight: 30},
		{ID: "security", Name: "Security", Keywords: []string{"防护", "安全隔离", "威胁检测", "入侵防护", "流量监控", "恶意软件"}, Weight: 40},
		{ID: "scenarios", Name: "Scenarios", Keywords: []string{"数据中心", "网络边界", "远程办公", "混合云", "多分支", "业务连续性"}, Weight: 30},
	}
}

func TestMatchKeywordsIsCaseInsensitiveAndOrdered(t *testing.T) {
	match := MatchKeywords("Our ROI story covers the 云端 deployment", []string{"云端", "roi", "企业级"})

	require.Equal(t, []string{"云端", "roi"}, match.Matched)
	require.Equal(t, []string{"企业级"}, match.Missing)
	require.Equal(t, 2, match.Count())
	require.InDelta(t, 2.0/3.0, match.Coverage(), 1e-9)
}

func TestMatchKeywordsKeepsNaiveSubstringSemantics(t *testing.T) {
	match := MatchKeywords("a happy customer", []string{"app", "高性能", "性能"})
	require.Equal(t, []string{"app"}, match.Matched)

	overlapping := MatchKeywords("高性能防火墙", []string{"高性能", "性能"})
	require.Equal(t, []string{"高性能", "性能"}, overlapping.Matched)
}

func TestMatchKeywordsEmptyInputs(t *testing.T) {
	empty := MatchKeywords("", []string{"企业级"})
	require.Empty(t, empty.Matched)
	require.Zero(t, empty.Coverage())

	none := MatchKeywords("anything", nil)
	require.Zero(t, none.Total)
	require.Zero(t, none.Coverage())
}

func TestCoverageLengthScenarioA(t *testing.T) {
	criteria := []Criterion{{ID: "intro", Name: "Product intro", Keywords: []string{"企业级", "安全隔离", "云端"}, Weight: 100}}
	text := "企业级" + strings.Repeat("好", 57)
	require.Equal(t, 60, TextLength(text))

	result := Evaluate(text, criteria, CoverageLength{})

	require.Equal(t, 32, result.CriteriaScores[0].Score)
	require.Equal(t, 32, result.TotalScore)
	require.Equal(t, LabelNeedsImprovement, result.Label)
	require.Equal(t, []string{"Product intro"}, result.MissingPoints)
	require.Len(t, result.Suggestions, 2)
	require.Contains(t, result.Suggestions[0], "安全隔离")
	require.Contains(t, result.Suggestions[0], "云端")
	require.Equal(t, suggestionTooShort, result.Suggestions[1])
}

func TestBucketedScenarioB(t *testing.T) {
	criteria := []Criterion{{ID: "intro", Name: "Product intro", Keywords: []string{"企业级", "安全防护", "云端部署", "智能识别", "高性能"}, Weight: 100}}
	text := "企业级安全防护。云端部署智能识别。技术领先。"
	text += strings.Repeat("的", 150-TextLength(text))
	require.Equal(t, 150, TextLength(text))

	result := Evaluate(text, criteria, Bucketed{})

	require.Equal(t, 92, result.CriteriaScores[0].Score)
	require.Equal(t, 92, result.TotalScore)
	require.Equal(t, LabelExcellent, result.Label)
	require.Empty(t, result.MissingPoints)
	require.Empty(t, result.Suggestions)
	require.Equal(t, feedbackExcellent, result.CriteriaScores[0].Feedback)
}

func TestBucketedTiersAndCap(t *testing.T) {
	match := Match{Matched: []string{"a", "b"}, Total: 2}

	short := Bucketed{}.Score("short", match)
	require.Equal(t, 40+10+10, short)

	medium := Bucketed{}.Score(strings.Repeat("x", 50), match)
	require.Equal(t, 40+20+10, medium)

	full := "解决方案。企业级。性能。" + strings.Repeat("x", 100)
	require.Equal(t, 100, Bucketed{}.Score(full, match))

	custom := Bucketed{ProfessionalTerms: []string{"alpha", "beta", "gamma"}}
	require.Equal(t, 40+10+20, custom.Score("alpha beta gamma", match))
}

func TestWeightedSumIdentity(t *testing.T) {
	scores := []CriterionScore{
		{Criterion: Criterion{Weight: 30}, Score: 90},
		{Criterion: Criterion{Weight: 40}, Score: 50},
		{Criterion: Criterion{Weight: 30}, Score: 70},
	}
	require.Equal(t, 68, Aggregate(scores))
}

func TestAggregateRoundsHalfUpAndTrustsWeights(t *testing.T) {
	half := []CriterionScore{{Criterion: Criterion{Weight: 50}, Score: 51}}
	require.Equal(t, 26, Aggregate(half))

	overweight := []CriterionScore{{Criterion: Criterion{Weight: 150}, Score: 100}}
	require.Equal(t, 150, Aggregate(overweight))

	require.Zero(t, Aggregate(nil))
}

func TestLabelFor(t *testing.T) {
	require.Equal(t, LabelExcellent, LabelFor(80))
	require.Equal(t, LabelGood, LabelFor(79))
	require.Equal(t, LabelGood, LabelFor(60))
	require.Equal(t, LabelNeedsImprovement, LabelFor(59))
}

func TestAverage(t *testing.T) {
	require.Zero(t, Average(nil))
	require.Equal(t, 79, Average([]int{92, 65}))
	require.Equal(t, 67, Average([]int{60, 70, 70}))
}

func TestEvaluateIsDeterministic(t *testing.T) {
	text := "赛博坦云盾防火墙是企业级的安全防护方案，支持云端部署，适合数据中心与远程办公。"
	for _, strategy := range []Strategy{CoverageLength{}, Bucketed{}} {
		first := Evaluate(text, productCriteria(), strategy)
		second := Evaluate(text, productCriteria(), strategy)
		require.Equal(t, first, second)
	}
}

func TestScoresStayInBounds(t *testing.T) {
	texts := []string{
		"",
		"企业级",
		strings.Repeat("企业级中大型企业云端专业商用防护安全隔离威胁检测入侵防护流量监控恶意软件数据中心网络边界远程办公混合云多分支业务连续性。", 10),
		strings.Repeat("x", 1000),
	}
	for _, strategy := range []Strategy{CoverageLength{}, Bucketed{}} {
		for _, text := range texts {
			result := Evaluate(text, productCriteria(), strategy)
			require.GreaterOrEqual(t, result.TotalScore, 0)
			require.LessOrEqual(t, result.TotalScore, 100)
			for _, score := range result.CriteriaScores {
				require.GreaterOrEqual(t, score.Score, 0)
				require.LessOrEqual(t, score.Score, 100)
			}
		}
	}
}

func TestAddingKeywordNeverLowersScore(t *testing.T) {
	criterion := Criterion{Name: "Positioning", Keywords: []string{"企业级", "云端", "专业"}, Weight: 100}
	fewer := "企业级" + strings.Repeat("好", 80)
	more := "企业级云端" + strings.Repeat("好", 78)
	require.Equal(t, TextLength(fewer), TextLength(more))

	for _, strategy := range []Strategy{CoverageLength{}, Bucketed{}} {
		before := ScoreCriterion(fewer, criterion, strategy)
		after := ScoreCriterion(more, criterion, strategy)
		require.GreaterOrEqual(t, after.Score, before.Score, string(strategy.Name()))
	}
}

func TestMissingPointsFollowThreshold(t *testing.T) {
	texts := []string{
		"",
		"企业级云端专业防护数据中心",
		strings.Repeat("企业级中大型企业云端专业商用防护安全隔离威胁检测入侵防护。", 8),
	}
	for _, strategy := range []Strategy{CoverageLength{}, Bucketed{}} {
		for _, text := range texts {
			result := Evaluate(text, productCriteria(), strategy)
			for _, score := range result.CriteriaScores {
				name := score.Criterion.Name
				if score.Score < PassThreshold {
					require.Contains(t, result.MissingPoints, name)
				}
				if score.Score >= ExcellentThreshold {
					require.NotContains(t, result.MissingPoints, name)
				}
			}
		}
	}
}

func TestCriteriaScoresKeepDeclarationOrder(t *testing.T) {
	result := Evaluate("企业级", productCriteria(), CoverageLength{})
	require.Len(t, result.CriteriaScores, 3)
	for i, criterion := range productCriteria() {
		require.Equal(t, criterion.ID, result.CriteriaScores[i].Criterion.ID)
	}
}

func TestEmptyInput(t *testing.T) {
	coverage := Evaluate("", productCriteria(), CoverageLength{})
	require.Zero(t, coverage.TotalScore)
	require.Contains(t, coverage.Suggestions, suggestionTooShort)
	require.Len(t, coverage.MissingPoints, 3)

	bucketed := Evaluate("", productCriteria(), Bucketed{})
	require.Equal(t, 20, bucketed.TotalScore)
	require.Contains(t, bucketed.Suggestions, suggestionTooShort)
}

func TestEmptyCriteria(t *testing.T) {
	result := Evaluate("企业级", nil, nil)
	require.Zero(t, result.TotalScore)
	require.NotNil(t, result.CriteriaScores)
	require.Empty(t, result.CriteriaScores)
	require.Empty(t, result.MissingPoints)
	require.Equal(t, StrategyCoverageLength, result.Strategy)
}

func TestCriterionWithoutKeywordsHasZeroCoverage(t *testing.T) {
	criterion := Criterion{Name: "Free form", Weight: 100}
	score := ScoreCriterion(strings.Repeat("x", 200), criterion, CoverageLength{})
	require.Equal(t, 30, score.Score)
}

func TestSuggestionUsesHint(t *testing.T) {
	criterion := Criterion{Name: "Positioning", Keywords: []string{"企业级"}, Weight: 100, Hint: "State the enterprise positioning"}
	result := Evaluate("nothing relevant", []Criterion{criterion}, CoverageLength{})
	require.Equal(t, "State the enterprise positioning (missing keywords: 企业级)", result.Suggestions[0])
}

func TestFeedbackFor(t *testing.T) {
	require.Equal(t, feedbackExcellent, FeedbackFor(95))
	require.Equal(t, feedbackGood, FeedbackFor(65))
	require.Equal(t, feedbackNeedsDetail, FeedbackFor(10))
}

func TestStrategyByName(t *testing.T) {
	strategy, err := StrategyByName("")
	require.NoError(t, err)
	require.Equal(t, StrategyCoverageLength, strategy.Name())

	strategy, err = StrategyByName(" BUCKETED ")
	require.NoError(t, err)
	require.Equal(t, StrategyBucketed, strategy.Name())

	_, err = StrategyByName("llm")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestScoreTurn(t *testing.T) {
	keywords := []string{"企业级", "安全防护", "云端部署", "威胁检测", "流量监控"}

	first := ScoreTurn("我们是企业级的安全防护产品", keywords, 0)
	require.Equal(t, []string{"企业级", "安全防护"}, first.Matched)
	require.Equal(t, 50, first.Progress)
	require.Equal(t, 80, first.Score)
	require.False(t, first.Complete)

	quiet := ScoreTurn("您好", keywords, first.Progress)
	require.Equal(t, 50, quiet.Progress)
	require.Equal(t, 60, quiet.Score)

	final := ScoreTurn("支持云端部署、威胁检测和流量监控", keywords, quiet.Progress)
	require.Equal(t, 100, final.Progress)
	require.Equal(t, 90, final.Score)
	require.True(t, final.Complete)

	capped := ScoreTurn(strings.Join(keywords, ""), keywords, 0)
	require.Equal(t, 95, capped.Score)
	require.Equal(t, 100, capped.Progress)
}
