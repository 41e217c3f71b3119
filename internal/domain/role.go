package domain

// Well-known role and authority names seeded at startup.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"

	AuthorityRead   = "READ_AUTHORITY"
	AuthorityWrite  = "WRITE_AUTHORITY"
	AuthorityDelete = "DELETE_AUTHORITY"
)

// Authority is a single named permission.
type Authority struct {
	ID   int64
	Name string
}

// Role bundles authorities; accounts hold roles, never bare authorities.
type Role struct {
	ID          int64
	Name        string
	Authorities []Authority
}
