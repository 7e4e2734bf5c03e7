package model

// Role identifies what a logged-in user can do and which dashboard they land on
type Role string

const (
	RolePlayer    Role = "player"
	RoleTeamAdmin Role = "team_admin"
	RoleClubAdmin Role = "club_admin"
	RoleUmpire    Role = "umpire"
	RoleMember    Role = "member"
)

// Valid reports whether the role is one the backend can return
func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleTeamAdmin, RoleClubAdmin, RoleUmpire, RoleMember:
		return true
	}
	return false
}

// Dashboard returns the destination for a role after login.
// Unrecognized roles fall back to the member dashboard.
func (r Role) Dashboard() string {
	switch r {
	case RolePlayer:
		return "/dashboard/player"
	case RoleTeamAdmin:
		return "/dashboard/team-admin"
	case RoleClubAdmin:
		return "/dashboard/club-admin"
	case RoleUmpire:
		return "/dashboard/umpire"
	default:
		return "/dashboard/member"
	}
}
