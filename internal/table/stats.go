package table

// SeatStats are in-memory counters for one seat over a session.
type SeatStats struct {
	Seat        int    `json:"seat"`
	Name        string `json:"name"`
	Profile     string `json:"profile,omitempty"`
	HandsPlayed int    `json:"hands_played"`
	HandsWon    int    `json:"hands_won"`
	ChipsWon    int    `json:"chips_won"` // net, may be negative
	Showdowns   int    `json:"showdowns"`
}
