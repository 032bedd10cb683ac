package matchevent

import "strings"

const (
	KindGoal       = "goal"
	KindOwnGoal    = "own goal"
	KindPenalty    = "penalty"
	KindYellowCard = "yellow card"
	KindRedCard    = "red card"
)

// GoalKinds are the normalized kinds counted as goals for the acting team.
var GoalKinds = []string{KindGoal, KindOwnGoal, KindPenalty}

// CardKinds are the normalized kinds counted by the card ranking.
var CardKinds = []string{KindYellowCard, KindRedCard}

// NormalizeKind lowercases a source kind and folds '-' and '_' to spaces so
// "Own goal", "own-goal" and "OWN_GOAL" compare equal.
func NormalizeKind(raw string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(raw))
	return strings.Join(strings.Fields(replaced), " ")
}

func IsGoal(kind string) bool {
	switch NormalizeKind(kind) {
	case KindGoal, KindOwnGoal, KindPenalty:
		return true
	}
	return false
}

func IsYellowCard(kind string) bool {
	return NormalizeKind(kind) == KindYellowCard
}

func IsRedCard(kind string) bool {
	return NormalizeKind(kind) == KindRedCard
}

func IsCard(kind string) bool {
	return IsYellowCard(kind) || IsRedCard(kind)
}
