package models

import "time"

// Group is a topical support group owned by the admin who created it.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

// MembershipState is the lifecycle state of a membership row.
type MembershipState string

const (
	// MembershipStatePending means the user has an outstanding join request.
	MembershipStatePending MembershipState = "pending"
	// MembershipStateActive means the user is a member of the group.
	MembershipStateActive MembershipState = "active"
)

// GroupMembership maps users to groups. The admin is a distinguished member
// (IsAdmin), not a separate field that can drift out of sync with the member
// set. Blocked rows always have State active: blocking retains membership so
// the admin can still see the user, and clears any pending request. A user
// therefore can never be pending and a member at the same time.
type GroupMembership struct {
	GroupID   uint            `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	Group     *Group          `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	UserID    uint            `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IsAdmin   bool            `gorm:"not null;default:false" json:"is_admin"`
	State     MembershipState `gorm:"type:varchar(20);not null;default:'active'" json:"state"`
	Blocked   bool            `gorm:"not null;default:false" json:"blocked"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (GroupMembership) TableName() string {
	return "group_memberships"
}

// GroupRole is the role a user occupies in a group. Every (group, user) pair
// occupies exactly one role at any time; it is computed from the membership
// row, never stored.
type GroupRole string

const (
	// RoleAdmin is the single user who created the group.
	RoleAdmin GroupRole = "admin"
	// RoleMember is a regular, non-blocked member.
	RoleMember GroupRole = "member"
	// RoleBlockedMember is a member barred from group interaction but
	// deliberately retained in the member list for visibility.
	RoleBlockedMember GroupRole = "blocked_member"
	// RolePending is a user with an outstanding join request.
	RolePending GroupRole = "pending"
	// RoleOutsider is a user with no relationship to the group.
	RoleOutsider GroupRole = "outsider"
)

// RoleOf computes the group role for a membership row. A nil row means the
// user is an outsider. Blocked wins over every other state: a blocked admin
// still fails the send/read check even though they keep their admin flag.
func RoleOf(m *GroupMembership) GroupRole {
	switch {
	case m == nil:
		return RoleOutsider
	case m.Blocked:
		return RoleBlockedMember
	case m.State == MembershipStatePending:
		return RolePending
	case m.IsAdmin:
		return RoleAdmin
	default:
		return RoleMember
	}
}
