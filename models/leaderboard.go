package models

// LeaderboardEntry represents one user's standing. There is no stored rank;
// the backend returns entries ordered by descending score.
type LeaderboardEntry struct {
	ID       int      `json:"id"`
	User     string   `json:"user"`
	Score    int      `json:"score"`
	Calories *float64 `json:"calories"`
}
