package player

// Player is a person seen in an event row. TeamID is the team of the event
// that created the player and is not updated by later transfers.
type Player struct {
	ID         int64
	ExternalID int64
	Name       string
	TeamID     *int64
}

func Index(items []Player) map[int64]Player {
	out := make(map[int64]Player, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}
