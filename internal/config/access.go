package config

// Access holds the whitelist and admin sets, built once at startup and
// immutable afterwards.
type Access struct {
	whitelist map[int64]struct{}
	admins    map[int64]struct{}
}

func NewAccess(whitelistIDs, adminIDs []int64) *Access {
	a := &Access{
		admins: make(map[int64]struct{}, len(adminIDs)),
	}

	if len(whitelistIDs) > 0 {
		a.whitelist = make(map[int64]struct{}, len(whitelistIDs))
		for _, id := range whitelistIDs {
			a.whitelist[id] = struct{}{}
		}
	}

	for _, id := range adminIDs {
		a.admins[id] = struct{}{}
	}

	return a
}

// Allowed reports whether a user may interact with the bot at all. An
// empty whitelist means everyone is allowed.
func (a *Access) Allowed(userID int64) bool {
	if a.whitelist == nil {
		return true
	}

	_, ok := a.whitelist[userID]

	return ok
}

// Admin reports whether a user may run operator commands.
func (a *Access) Admin(userID int64) bool {
	_, ok := a.admins[userID]

	return ok
}
