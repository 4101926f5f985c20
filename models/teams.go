package models

// Team represents a named group of users. Members holds usernames.
type Team struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Members StringList `json:"members"`
}

// MembersPatch is the body of a team membership update.
type MembersPatch struct {
	Members StringList `json:"members"`
}
