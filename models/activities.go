package models

// Activity represents a logged exercise session. User holds a username.
type Activity struct {
	ID           int     `json:"id"`
	User         string  `json:"user"`
	ActivityType string  `json:"activity_type"`
	Duration     float64 `json:"duration"`
	Date         string  `json:"date"`
}
