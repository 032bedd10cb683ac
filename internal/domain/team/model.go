package team

// Team is a club side identified by the source's external team id.
// The name is fixed at creation; later rows with another name do not rename it.
type Team struct {
	ID           int64
	ExternalID   int64
	Name         string
	ParentClubID *int64
	Association  string
}

// NameIndex maps internal team ids to display names.
func NameIndex(items []Team) map[int64]string {
	out := make(map[int64]string, len(items))
	for _, item := range items {
		out[item.ID] = item.Name
	}
	return out
}
