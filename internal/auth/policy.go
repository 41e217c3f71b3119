package auth

import "github.com/hubex/account-service/internal/domain"

// Authorization is an explicit policy check invoked by the HTTP boundary;
// the services underneath never inspect the calling principal.

// CanManageAccount decides whether the caller may read or modify the target
// account. Admins act on any account, everyone else only on their own.
func CanManageAccount(caller *domain.Account, targetPublicID string) bool {
	if caller == nil {
		return false
	}
	if caller.HasRole(domain.RoleAdmin) {
		return true
	}
	return caller.PublicID == targetPublicID
}

// CanListAccounts restricts the account listing to admins.
func CanListAccounts(caller *domain.Account) bool {
	return caller != nil && caller.HasRole(domain.RoleAdmin)
}

// CanDeleteAccount restricts deletion to holders of the delete authority.
func CanDeleteAccount(caller *domain.Account) bool {
	if caller == nil {
		return false
	}
	for _, role := range caller.Roles {
		for _, authority := range role.Authorities {
			if authority.Name == domain.AuthorityDelete {
				return true
			}
		}
	}
	return false
}
