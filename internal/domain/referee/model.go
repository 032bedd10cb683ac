package referee

import "time"

type Referee struct {
	ID          int64
	ExternalID  int64
	Name        string
	Gender      string
	Nationality string
	DateOfBirth *time.Time
}
