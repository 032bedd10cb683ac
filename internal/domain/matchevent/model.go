package matchevent

// Event is one incident of a match (goal, card, substitution...). Only
// IsHome may change after creation.
type Event struct {
	ID                int64
	MatchID           int64
	PlayerID          int64
	TeamID            int64
	Kind              string
	SubType           *string
	Minute            *int
	Phase             string
	IsHome            bool
	SecondPlayerID    *int64
	StoppageTime      *int
	AccumulatedYellow *string
}

// NaturalKey deduplicates events across syncs: (match, player, kind, minute, phase).
// Kind is compared verbatim; a nil or unstorable minute is its own value.
type NaturalKey struct {
	MatchID     int64
	PlayerID    int64
	Kind        string
	Minute      int
	MinuteKnown bool
	Phase       string
}

func NewNaturalKey(matchID, playerID int64, kind string, minute *int, phase string) NaturalKey {
	key := NaturalKey{MatchID: matchID, PlayerID: playerID, Kind: kind, Phase: phase}
	if minute != nil && *minute >= minMinute && *minute <= maxMinute {
		key.Minute = *minute
		key.MinuteKnown = true
	}
	return key
}

func (e Event) Key() NaturalKey {
	return NewNaturalKey(e.MatchID, e.PlayerID, e.Kind, e.Minute, e.Phase)
}

// MinutePtr converts the key minute back to the nullable column form.
func (k NaturalKey) MinutePtr() *int {
	if !k.MinuteKnown {
		return nil
	}
	minute := k.Minute
	return &minute
}
