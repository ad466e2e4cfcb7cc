package tutor

import (
	"sort"
	"strconv"
	"strings"
)

// Level labels shared by prompts and reporting.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// ReadingLevel maps a reading test score (out of 100) to a level label.
func ReadingLevel(score int) string {
	switch {
	case score < 60:
		return LevelBeginner
	case score < 80:
		return LevelIntermediate
	default:
		return LevelAdvanced
	}
}

// StrategyLevel maps a strategy questionnaire score (out of 75) to a
// level label.
func StrategyLevel(score int) string {
	switch {
	case score <= 25:
		return LevelBeginner
	case score <= 50:
		return LevelIntermediate
	default:
		return LevelAdvanced
	}
}

// parseScore reads a stored score string, defaulting to 0.
func parseScore(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseScoreFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// improvement returns the percentage change from pre to post, 0 when
// there is no pre score to compare against.
func improvement(pre, post float64) float64 {
	if pre <= 0 {
		return 0
	}
	return (post - pre) / pre * 100
}

// mergeWrongTokens unions the stored wrong-answer tokens with newly
// submitted ones, deduplicated and sorted.
func mergeWrongTokens(existing string, submitted []string) string {
	seen := make(map[string]bool)
	for _, item := range strings.Split(existing, ",") {
		if item = strings.TrimSpace(item); item != "" {
			seen[item] = true
		}
	}
	for _, item := range submitted {
		if item = strings.TrimSpace(item); item != "" {
			seen[item] = true
		}
	}
	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ",")
}
