package models

// Group represents a reusable participant list.
// Bills can belong to a group, enabling group balances.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string

	// Description is optional free text.
	Description string

	// CreatedBy is the email of the user who created the group.
	CreatedBy string

	// Members is the list of member emails in this group.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether email is one of the group's members.
func (g *Group) HasMember(email string) bool {
	for _, m := range g.Members {
		if m == email {
			return true
		}
	}
	return false
}
