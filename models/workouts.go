package models

// Workout represents a suggested workout plan.
type Workout struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Exercises   StringList `json:"exercises"`
}
