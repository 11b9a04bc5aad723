package config

import "testing"

func TestAccessEmptyWhitelistAllowsEveryone(t *testing.T) {
	a := NewAccess(nil, []int64{1})

	if !a.Allowed(42) {
		t.Error("empty whitelist should allow any user")
	}

	if !a.Allowed(1) {
		t.Error("empty whitelist should allow admins too")
	}
}

func TestAccessWhitelistMembership(t *testing.T) {
	a := NewAccess([]int64{10, 20}, nil)

	if !a.Allowed(10) {
		t.Error("whitelisted user should be allowed")
	}

	if a.Allowed(30) {
		t.Error("non-whitelisted user should be denied")
	}
}

func TestAccessAdminIsSeparateFromWhitelist(t *testing.T) {
	a := NewAccess([]int64{10}, []int64{20})

	if a.Admin(10) {
		t.Error("whitelisted user is not an admin")
	}

	if !a.Admin(20) {
		t.Error("admin should be recognized")
	}

	if a.Allowed(20) {
		t.Error("admin is still subject to the whitelist for regular interaction")
	}
}
