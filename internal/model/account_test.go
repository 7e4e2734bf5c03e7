package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRolePrecedence(t *testing.T) {
	cases := []struct {
		name    string
		account Account
		want    Role
	}{
		{"plain account", Account{IsMember: true}, RoleMember},
		{"player", Account{Player: &PlayerProfile{}}, RolePlayer},
		{"team admin", Account{Player: &PlayerProfile{IsTeamAdmin: true}}, RoleTeamAdmin},
		{"umpire", Account{IsUmpire: true}, RoleUmpire},
		{"umpire who also plays", Account{IsUmpire: true, Player: &PlayerProfile{}}, RoleUmpire},
		{"club admin outranks all", Account{IsClubAdmin: true, IsUmpire: true, Player: &PlayerProfile{IsTeamAdmin: true}}, RoleClubAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.account.ResolveRole())
		})
	}
}

func TestDashboardFallsBackToMember(t *testing.T) {
	assert.Equal(t, "/dashboard/member", Role("superuser").Dashboard())
	assert.Equal(t, "/dashboard/club-admin", RoleClubAdmin.Dashboard())
}
