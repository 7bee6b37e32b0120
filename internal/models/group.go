package models

// GroupRole is a member's role inside a group.
type GroupRole string

const (
	GroupRoleAdmin  GroupRole = "admin"
	GroupRoleMember GroupRole = "member"
)

// Group is a set of users that can collectively own expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string

	Description string

	// Members lists the users in this group with their roles.
	Members []GroupMember

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMember links a user to a group.
type GroupMember struct {
	UserID   string
	Role     GroupRole
	JoinedAt int64
}

func (g *Group) EntityID() string       { return g.ID }
func (g *Group) EntityKind() EntityKind { return EntityKindGroup }

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
