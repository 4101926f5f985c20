package views

import "github.com/octofit/octofit-tracker/models"

// DisplayNames maps each username to its display name: trimmed
// "first_name last_name", or the username when both are blank.
func DisplayNames(users []models.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.Username] = u.FullName()
	}
	return names
}

// ResolveName looks username up in names, falling back to the username itself
// for references to unknown users.
func ResolveName(names map[string]string, username string) string {
	if name, ok := names[username]; ok {
		return name
	}
	return username
}

// JoinNames resolves every reference in usernames, keeping order.
func JoinNames(names map[string]string, usernames []string) []string {
	out := make([]string, 0, len(usernames))
	for _, u := range usernames {
		out = append(out, ResolveName(names, u))
	}
	return out
}
