package match

// Status values are stored verbatim from the source. Reconciliation only
// recognizes these case-sensitive sentinels.
const (
	StatusScheduled = "SCHEDULED"
	StatusEntered   = "ENTERED"
	StatusPlayed    = "PLAYED"
	StatusCorrected = "CORRECTED"
)

// ZoneInterzonal tags a cross-zone fixture that counts in both zones' tables.
const ZoneInterzonal = "INTERZONAL"

func IsUnplayed(status string) bool {
	return status == StatusScheduled || status == StatusEntered
}

func IsPlayed(status string) bool {
	return status == StatusPlayed || status == StatusCorrected
}

// Repair returns the status after reconciliation saw goalTotal goals. Only an
// unplayed status with goals moves, and only forward to PLAYED.
func Repair(status string, goalTotal int) string {
	if goalTotal > 0 && IsUnplayed(status) {
		return StatusPlayed
	}
	return status
}
